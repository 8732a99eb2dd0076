package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/testhelpers"
)

func TestFeedAnonymous(t *testing.T) {
	a := newTestAPI(t)
	owner := testhelpers.CreateTestUser(t, a.db)
	household := testhelpers.CreateTestHousehold(t, a.db, owner.ID)

	testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Older", Global: true, Age: 2 * time.Hour})
	testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Newer", Global: true, Age: time.Hour, Image: "recipes/newer.jpg"})
	testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Private", HouseholdID: &household.ID})

	rr := a.do(t, http.MethodGet, "/api/v1/feed?diet=keto", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	items := decode[[]feedItem](t, rr)
	assert.Equal(t, []string{"Newer", "Older"}, titles(items))
	require.NotNil(t, items[0].Image)
	assert.Equal(t, "https://signed.example.com/recipes/newer.jpg", *items[0].Image)
}

func TestFeedInvalidTokenFallsBackToAnonymous(t *testing.T) {
	a := newTestAPI(t)
	testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Global", Global: true})

	rr := a.do(t, http.MethodGet, "/api/v1/feed", "not-a-token", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Global"}, titles(decode[[]feedItem](t, rr)))
}

func TestFeedPersonalized(t *testing.T) {
	a := newTestAPI(t)
	user := testhelpers.CreateTestUser(t, a.db)
	testhelpers.CreateTestProfile(t, a.db, user.ID, models.UserProfile{
		Diets:            models.StringList{"vegan"},
		FavoriteCuisines: models.StringList{"mexican"},
	})

	recipeA := testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{
		Title:       "A",
		Global:      true,
		Tags:        models.RecipeTags{Diets: models.StringList{"vegan"}, Cuisines: models.StringList{"mexican"}},
		Ingredients: []string{"beans", "corn"},
		Age:         2 * time.Hour,
	})
	testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{
		Title:       "B",
		Global:      true,
		Tags:        models.RecipeTags{Diets: models.StringList{"keto"}, Cuisines: models.StringList{"mexican"}},
		Ingredients: []string{"beans", "corn"},
		Age:         time.Hour,
	})
	for i := 0; i < 2; i++ {
		reviewer := testhelpers.CreateTestUser(t, a.db)
		testhelpers.CreateTestReview(t, a.db, reviewer.ID, recipeA.ID, testhelpers.IntPtr(5))
	}

	rr := a.do(t, http.MethodGet, "/api/v1/feed", a.token(t, user), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	items := decode[[]feedItem](t, rr)
	require.Equal(t, []string{"A", "B"}, titles(items))
	assert.Equal(t, 5.0, items[0].AvgRating)
	assert.Equal(t, 2, items[0].ReviewCount)
	assert.Equal(t, 0, items[1].ReviewCount)
	assert.NotContains(t, rr.Body.String(), `"score"`)
}

func TestFeedFiltersAreCaseInsensitive(t *testing.T) {
	a := newTestAPI(t)
	user := testhelpers.CreateTestUser(t, a.db)

	testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{
		Title:  "Thai",
		Global: true,
		Tags:   models.RecipeTags{Cuisines: models.StringList{"thai"}},
		Age:    2 * time.Hour,
	})
	testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Plain", Global: true, Age: time.Hour})

	rr := a.do(t, http.MethodGet, "/api/v1/feed?cuisine=%20THAI%20", a.token(t, user), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Thai", "Plain"}, titles(decode[[]feedItem](t, rr)))
}

func TestFeedHideSkipped(t *testing.T) {
	a := newTestAPI(t)
	user := testhelpers.CreateTestUser(t, a.db)
	skipped := testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Skipped", Global: true})
	testhelpers.CreateTestRecipe(t, a.db, testhelpers.RecipeFixture{Title: "Kept", Global: true, Age: time.Hour})
	testhelpers.CreateTestReaction(t, a.db, user.ID, skipped.ID, models.ReactionSkip)
	token := a.token(t, user)

	rr := a.do(t, http.MethodGet, "/api/v1/feed", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Kept", "Skipped"}, titles(decode[[]feedItem](t, rr)))

	rr = a.do(t, http.MethodGet, "/api/v1/feed?hideSkipped=true", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Kept"}, titles(decode[[]feedItem](t, rr)))

	for _, v := range []string{"yes", "1", "TRUE", ""} {
		rr = a.do(t, http.MethodGet, "/api/v1/feed?hideSkipped="+v, token, nil)
		require.Equal(t, http.StatusOK, rr.Code, v)
		assert.Equal(t, []string{"Kept", "Skipped"}, titles(decode[[]feedItem](t, rr)), v)
	}
}

func TestFeedEmpty(t *testing.T) {
	a := newTestAPI(t)
	user := testhelpers.CreateTestUser(t, a.db)

	rr := a.do(t, http.MethodGet, "/api/v1/feed", a.token(t, user), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = a.do(t, http.MethodGet, "/api/v1/feed", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
