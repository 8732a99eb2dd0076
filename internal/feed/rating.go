package feed

import "github.com/pageza/mealfeed/backend/internal/models"

// Rating summarizes a recipe's reviews.
type Rating struct {
	Avg   float64
	Count int
}

// AggregateRating averages review ratings. Reviews without a rating count as
// 0; no reviews yields the zero Rating.
func AggregateRating(reviews []models.RecipeReview) Rating {
	if len(reviews) == 0 {
		return Rating{}
	}
	var sum float64
	for _, r := range reviews {
		if r.Rating != nil {
			sum += float64(*r.Rating)
		}
	}
	return Rating{Avg: sum / float64(len(reviews)), Count: len(reviews)}
}

// Annotate attaches the rating summary to a recipe without scoring it.
func Annotate(r models.Recipe) ScoredRecipe {
	rating := AggregateRating(r.Reviews)
	return ScoredRecipe{Recipe: r, AvgRating: rating.Avg, ReviewCount: rating.Count}
}

// AnnotateAll annotates recipes in order.
func AnnotateAll(recipes []models.Recipe) []ScoredRecipe {
	out := make([]ScoredRecipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, Annotate(r))
	}
	return out
}
