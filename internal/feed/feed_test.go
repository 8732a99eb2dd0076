package feed

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealfeed/backend/internal/models"
)

func rating(v int) *int { return &v }

func reviews(ratings ...int) []models.RecipeReview {
	out := make([]models.RecipeReview, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, models.RecipeReview{ID: uuid.New(), Rating: rating(r)})
	}
	return out
}

func ingredients(names ...string) []models.RecipeIngredient {
	out := make([]models.RecipeIngredient, 0, len(names))
	for _, n := range names {
		out = append(out, models.RecipeIngredient{ID: uuid.New(), Name: n})
	}
	return out
}

func recipe(title string, tags models.RecipeTags, ings ...string) models.Recipe {
	return models.Recipe{
		ID:          uuid.New(),
		Title:       title,
		IsGlobal:    true,
		Tags:        tags,
		Ingredients: ingredients(ings...),
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func titles(rs []ScoredRecipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}
