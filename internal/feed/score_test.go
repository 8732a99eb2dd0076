package feed

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/mealfeed/backend/internal/models"
)

func TestExplainTerms(t *testing.T) {
	base := func() (models.Recipe, *Context, Filters) {
		r := recipe("base", models.RecipeTags{}, "rice", "onion")
		return r, &Context{}, Filters{}
	}

	tests := []struct {
		name  string
		setup func(r *models.Recipe, c *Context, f *Filters)
		term  func(b Breakdown) float64
		want  float64
	}{
		{
			name: "diet mismatch",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.Diets = models.StringList{"vegan"}
				r.Tags.Diets = models.StringList{"keto"}
			},
			term: func(b Breakdown) float64 { return b.DietCompatibility },
			want: -100,
		},
		{
			name: "diet subset is compatible",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.Diets = models.StringList{"vegan", "gluten-free"}
				r.Tags.Diets = models.StringList{"vegan"}
			},
			term: func(b Breakdown) float64 { return b.DietCompatibility },
			want: 0,
		},
		{
			name: "extra recipe diet tag is penalized",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.Diets = models.StringList{"vegan"}
				r.Tags.Diets = models.StringList{"vegan", "gluten-free"}
			},
			term: func(b Breakdown) float64 { return b.DietCompatibility },
			want: -100,
		},
		{
			name: "no user diets never penalizes",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				r.Tags.Diets = models.StringList{"keto"}
			},
			term: func(b Breakdown) float64 { return b.DietCompatibility },
			want: 0,
		},
		{
			name: "untagged recipe is diet compatible",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.Diets = models.StringList{"vegan"}
			},
			term: func(b Breakdown) float64 { return b.DietCompatibility },
			want: 0,
		},
		{
			name: "diet filter miss",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				f.Diet = "vegan"
				r.Tags.Diets = models.StringList{"keto"}
			},
			term: func(b Breakdown) float64 { return b.DietFilter },
			want: -100,
		},
		{
			name: "diet filter hit",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				f.Diet = "vegan"
				r.Tags.Diets = models.StringList{"vegan"}
			},
			term: func(b Breakdown) float64 { return b.DietFilter },
			want: 0,
		},
		{
			name: "allergy conflict",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.Allergies = models.StringList{"peanut"}
				r.Tags.Allergens = models.StringList{"dairy", "peanut"}
			},
			term: func(b Breakdown) float64 { return b.Allergy },
			want: -100,
		},
		{
			name: "cuisine affinity per match",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.FavoriteCuisines = models.StringList{"mexican", "italian"}
				r.Tags.Cuisines = models.StringList{"mexican", "italian", "thai"}
			},
			term: func(b Breakdown) float64 { return b.CuisineAffinity },
			want: 10,
		},
		{
			name: "cuisine filter miss",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				f.Cuisine = "thai"
			},
			term: func(b Breakdown) float64 { return b.CuisineFilter },
			want: -50,
		},
		{
			name: "favorite ingredients",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.FavoriteMeats = models.StringList{"chicken"}
				c.Profile.FavoriteVegetables = models.StringList{"onion"}
				r.Ingredients = ingredients("Chicken", "onion", "rice")
			},
			term: func(b Breakdown) float64 { return b.IngredientPreference },
			want: 4,
		},
		{
			name: "ingredient in both favorite lists counts once",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.FavoriteMeats = models.StringList{"onion"}
				c.Profile.FavoriteVegetables = models.StringList{"onion"}
			},
			term: func(b Breakdown) float64 { return b.IngredientPreference },
			want: 2,
		},
		{
			name: "disliked ingredients",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Profile.DislikedIngredients = models.StringList{"rice", "onion"}
			},
			term: func(b Breakdown) float64 { return b.IngredientDislike },
			want: -10,
		},
		{
			name: "inventory matches",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Inventory = NewNameSet("Rice", "garlic")
			},
			term: func(b Breakdown) float64 { return b.Inventory },
			want: 1,
		},
		{
			name: "heart",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Reactions = map[uuid.UUID]models.ReactionType{r.ID: models.ReactionHeart}
			},
			term: func(b Breakdown) float64 { return b.Reaction },
			want: 20,
		},
		{
			name: "skip",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				c.Reactions = map[uuid.UUID]models.ReactionType{r.ID: models.ReactionSkip}
			},
			term: func(b Breakdown) float64 { return b.Reaction },
			want: -100,
		},
		{
			name: "rating",
			setup: func(r *models.Recipe, c *Context, f *Filters) {
				r.Reviews = reviews(4, 5)
			},
			term: func(b Breakdown) float64 { return b.Rating },
			want: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c, f := base()
			tt.setup(&r, c, &f)
			b := Explain(&r, c, f, AggregateRating(r.Reviews))
			assert.Equal(t, tt.want, tt.term(b))
			assert.Equal(t, tt.want, b.Total(), "other terms should stay at zero")
		})
	}
}

func TestPenaltiesStack(t *testing.T) {
	r := recipe("bad", models.RecipeTags{
		Diets:     models.StringList{"keto"},
		Allergens: models.StringList{"peanut"},
	}, "peanut")
	c := &Context{
		Profile: Profile{
			Diets:               models.StringList{"vegan"},
			Allergies:           models.StringList{"peanut"},
			DislikedIngredients: models.StringList{"peanut"},
		},
		Reactions: map[uuid.UUID]models.ReactionType{r.ID: models.ReactionSkip},
	}
	f := Filters{Diet: "vegan", Cuisine: "thai"}

	assert.Equal(t, -455.0, Score(&r, c, f, Rating{}))
}

func TestSkipCostsExactlyOneHundred(t *testing.T) {
	r := recipe("r", models.RecipeTags{Cuisines: models.StringList{"mexican"}}, "beans")
	r.Reviews = reviews(3)
	c := &Context{Profile: Profile{FavoriteCuisines: models.StringList{"mexican"}}}
	without := Score(&r, c, Filters{}, AggregateRating(r.Reviews))

	c.Reactions = map[uuid.UUID]models.ReactionType{r.ID: models.ReactionSkip}
	with := Score(&r, c, Filters{}, AggregateRating(r.Reviews))

	assert.Equal(t, without-100, with)
}

func TestCuisineAffinityIsLinear(t *testing.T) {
	c := &Context{Profile: Profile{FavoriteCuisines: models.StringList{"mexican", "italian"}}}
	tagged := recipe("tagged", models.RecipeTags{Cuisines: models.StringList{"mexican", "italian"}})
	plain := recipe("plain", models.RecipeTags{})

	diff := Score(&tagged, c, Filters{}, Rating{}) - Score(&plain, c, Filters{}, Rating{})
	assert.Equal(t, 10.0, diff)
}

func TestIngredientOrderDoesNotMatter(t *testing.T) {
	c := &Context{
		Profile: Profile{
			FavoriteMeats:       models.StringList{"beef"},
			DislikedIngredients: models.StringList{"olive"},
		},
		Inventory: NewNameSet("beef", "tomato"),
	}
	a := recipe("a", models.RecipeTags{}, "beef", "olive", "tomato")
	b := a
	b.Ingredients = ingredients("tomato", "olive", "beef")

	assert.Equal(t, Score(&a, c, Filters{}, Rating{}), Score(&b, c, Filters{}, Rating{}))
}

func TestScoreWithoutContext(t *testing.T) {
	r := recipe("r", models.RecipeTags{Diets: models.StringList{"vegan"}}, "tofu")
	r.Reviews = reviews(5)

	assert.Equal(t, 10.0, Score(&r, nil, Filters{}, AggregateRating(r.Reviews)))
}

func TestExplainDoesNotMutateInputs(t *testing.T) {
	r := recipe("r", models.RecipeTags{Cuisines: models.StringList{"thai"}}, "Basil")
	c := &Context{Profile: Profile{FavoriteVegetables: models.StringList{"basil"}}}

	Explain(&r, c, Filters{Cuisine: "thai"}, Rating{})

	assert.Equal(t, "Basil", r.Ingredients[0].Name)
	assert.Equal(t, models.StringList{"thai"}, r.Tags.Cuisines)
	assert.Equal(t, models.StringList{"basil"}, c.Profile.FavoriteVegetables)
}

func TestProfileFrom(t *testing.T) {
	assert.Equal(t, Profile{}, ProfileFrom(nil))

	p := ProfileFrom(&models.UserProfile{
		Diets:         models.StringList{" Vegan ", "vegan"},
		FavoriteMeats: models.StringList{"Chicken"},
	})
	assert.Equal(t, models.StringList{"vegan"}, p.Diets)
	assert.Equal(t, models.StringList{"chicken"}, p.FavoriteMeats)
	assert.Empty(t, p.Allergies)
}
