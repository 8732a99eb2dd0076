package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/mealfeed/backend/internal/models"
)

func TestAggregateRating(t *testing.T) {
	got := AggregateRating(reviews(5, 3, 4))
	assert.Equal(t, 4.0, got.Avg)
	assert.Equal(t, 3, got.Count)

	got = AggregateRating(nil)
	assert.Equal(t, 0.0, got.Avg)
	assert.Equal(t, 0, got.Count)
}

func TestAggregateRatingMissingValueCountsAsZero(t *testing.T) {
	rs := append(reviews(4), models.RecipeReview{})
	got := AggregateRating(rs)
	assert.Equal(t, 2.0, got.Avg)
	assert.Equal(t, 2, got.Count)
}

func TestAnnotate(t *testing.T) {
	r := recipe("soup", models.RecipeTags{}, "leek")
	r.Reviews = reviews(5, 4)

	got := Annotate(r)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "soup", got.Title)
	assert.Equal(t, 4.5, got.AvgRating)
	assert.Equal(t, 2, got.ReviewCount)
}
