package feed

import (
	"strings"

	"github.com/pageza/mealfeed/backend/internal/models"
)

// Term weights. The -100 class is large enough to sink a recipe below any
// realistic sum of positive terms, which is how exclusions are expressed.
const (
	DietMismatchPenalty      = -100
	DietFilterPenalty        = -100
	AllergyPenalty           = -100
	CuisineAffinityBoost     = 5
	CuisineFilterPenalty     = -50
	IngredientFavoriteBoost  = 2
	IngredientDislikePenalty = -5
	InventoryBoost           = 1
	HeartBoost               = 20
	SkipPenalty              = -100
	RatingWeight             = 2
)

// Breakdown holds every additive term of a recipe's score.
type Breakdown struct {
	DietCompatibility    float64 `json:"dietCompatibility"`
	DietFilter           float64 `json:"dietFilter"`
	Allergy              float64 `json:"allergy"`
	CuisineAffinity      float64 `json:"cuisineAffinity"`
	CuisineFilter        float64 `json:"cuisineFilter"`
	IngredientPreference float64 `json:"ingredientPreference"`
	IngredientDislike    float64 `json:"ingredientDislike"`
	Inventory            float64 `json:"inventory"`
	Reaction             float64 `json:"reaction"`
	Rating               float64 `json:"rating"`
}

// Total is the recipe's score.
func (b Breakdown) Total() float64 {
	return b.DietCompatibility + b.DietFilter + b.Allergy +
		b.CuisineAffinity + b.CuisineFilter +
		b.IngredientPreference + b.IngredientDislike + b.Inventory +
		b.Reaction + b.Rating
}

// Score returns the desirability of r for the caller described by c.
func Score(r *models.Recipe, c *Context, f Filters, rating Rating) float64 {
	return Explain(r, c, f, rating).Total()
}

// Explain computes each score term independently. Terms never short-circuit
// one another, so penalties stack.
func Explain(r *models.Recipe, c *Context, f Filters, rating Rating) Breakdown {
	var (
		b       Breakdown
		profile Profile
		pantry  NameSet
	)
	if c != nil {
		profile = c.Profile
		pantry = c.Inventory
	}
	tags := r.Tags

	// A user on ["vegan"] viewing ["vegan","gluten-free"] is penalized here:
	// every recipe diet must be one of the user's diets.
	if len(profile.Diets) > 0 && len(tags.Diets) > 0 && !containsAll(profile.Diets, tags.Diets) {
		b.DietCompatibility = DietMismatchPenalty
	}
	if f.Diet != "" && !tags.Diets.Contains(f.Diet) {
		b.DietFilter = DietFilterPenalty
	}
	if containsAny(profile.Allergies, tags.Allergens) {
		b.Allergy = AllergyPenalty
	}

	for _, cuisine := range tags.Cuisines {
		if profile.FavoriteCuisines.Contains(cuisine) {
			b.CuisineAffinity += CuisineAffinityBoost
		}
	}
	if f.Cuisine != "" && !tags.Cuisines.Contains(f.Cuisine) {
		b.CuisineFilter = CuisineFilterPenalty
	}

	// Each ingredient contributes to three independent sums; the fold is
	// commutative so ingredient order never changes the result.
	for _, ing := range r.Ingredients {
		name := strings.ToLower(ing.Name)
		if profile.FavoriteMeats.Contains(name) || profile.FavoriteVegetables.Contains(name) {
			b.IngredientPreference += IngredientFavoriteBoost
		}
		if profile.DislikedIngredients.Contains(name) {
			b.IngredientDislike += IngredientDislikePenalty
		}
		if pantry.Has(name) {
			b.Inventory += InventoryBoost
		}
	}

	switch c.Reaction(r.ID) {
	case models.ReactionHeart:
		b.Reaction = HeartBoost
	case models.ReactionSkip:
		b.Reaction = SkipPenalty
	}

	if rating.Count > 0 {
		b.Rating = rating.Avg * RatingWeight
	}
	return b
}

func containsAll(set, items models.StringList) bool {
	for _, it := range items {
		if !set.Contains(it) {
			return false
		}
	}
	return true
}

func containsAny(set, items models.StringList) bool {
	for _, it := range items {
		if set.Contains(it) {
			return true
		}
	}
	return false
}
