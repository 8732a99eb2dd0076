package feed

import (
	"cmp"
	"slices"

	"github.com/pageza/mealfeed/backend/internal/models"
)

type ranked struct {
	recipe ScoredRecipe
	score  float64
}

// Rank scores candidates for an authenticated caller and returns at most
// MaxResults of them, best first.
//
// Candidates must arrive most-recent-first: equal scores keep their input
// order, which makes ties resolve toward newer recipes. When HideSkipped is
// set, recipes the caller skipped are removed outright; otherwise they only
// carry the skip penalty.
func Rank(candidates []models.Recipe, c *Context, f Filters) []ScoredRecipe {
	rows := make([]ranked, 0, len(candidates))
	for i := range candidates {
		r := &candidates[i]
		rating := AggregateRating(r.Reviews)
		row := ranked{
			recipe: ScoredRecipe{Recipe: *r, AvgRating: rating.Avg, ReviewCount: rating.Count},
			score:  Score(r, c, f, rating),
		}
		if f.HideSkipped && c.Reaction(r.ID) == models.ReactionSkip {
			continue
		}
		rows = append(rows, row)
	}

	slices.SortStableFunc(rows, func(a, b ranked) int {
		return cmp.Compare(b.score, a.score)
	})
	if len(rows) > MaxResults {
		rows = rows[:MaxResults]
	}

	out := make([]ScoredRecipe, len(rows))
	for i, row := range rows {
		out[i] = row.recipe
	}
	return out
}

// Recent is the unpersonalized feed: global recipes only, newest first,
// capped at MaxResults and annotated with ratings. Nothing is scored or
// filtered beyond the global constraint.
func Recent(recipes []models.Recipe) []ScoredRecipe {
	global := make([]models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.IsGlobal {
			global = append(global, r)
		}
	}
	slices.SortStableFunc(global, func(a, b models.Recipe) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(global) > MaxResults {
		global = global[:MaxResults]
	}
	return AnnotateAll(global)
}
