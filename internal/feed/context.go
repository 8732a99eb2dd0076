// Package feed ranks candidate recipes for a caller.
//
// Everything in this package is a pure function of its arguments: no storage
// I/O, no package-level mutable state, and no mutation of the recipes, profile
// or reaction data passed in. Callers resolve the profile context and fetch
// candidates beforehand (see service.FeedService).
package feed

import (
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/mealfeed/backend/internal/models"
)

// MaxResults caps every feed.
const MaxResults = 50

// Profile is the flat, lowercased preference view of a user.
type Profile struct {
	Diets               models.StringList
	Allergies           models.StringList
	FavoriteCuisines    models.StringList
	FavoriteMeats       models.StringList
	FavoriteVegetables  models.StringList
	DislikedIngredients models.StringList
}

// ProfileFrom flattens a stored profile. A nil profile yields empty lists.
func ProfileFrom(p *models.UserProfile) Profile {
	if p == nil {
		return Profile{}
	}
	return Profile{
		Diets:               p.Diets.Normalize(),
		Allergies:           p.Allergies.Normalize(),
		FavoriteCuisines:    p.FavoriteCuisines.Normalize(),
		FavoriteMeats:       p.FavoriteMeats.Normalize(),
		FavoriteVegetables:  p.FavoriteVegetables.Normalize(),
		DislikedIngredients: p.DislikedIngredients.Normalize(),
	}
}

// NameSet is a set of lowercase ingredient names.
type NameSet map[string]struct{}

// NewNameSet lowercases and trims names into a set, skipping blanks.
func NewNameSet(names ...string) NameSet {
	set := make(NameSet, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Context is the resolved, request-scoped signal set for one authenticated
// caller.
type Context struct {
	Profile   Profile
	Inventory NameSet
	Reactions map[uuid.UUID]models.ReactionType
}

// Reaction returns the caller's reaction to a recipe, or "" when there is none.
func (c *Context) Reaction(recipeID uuid.UUID) models.ReactionType {
	if c == nil {
		return ""
	}
	return c.Reactions[recipeID]
}

// Filters are the optional, caller-supplied search parameters. Empty strings
// mean "not set".
type Filters struct {
	Query       string
	Diet        string
	Cuisine     string
	HideSkipped bool
}

// ScoredRecipe is a recipe annotated with its rating summary. The score used
// for ordering is deliberately not part of it.
type ScoredRecipe struct {
	models.Recipe
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int     `json:"reviewCount"`
}
