package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/pageza/mealfeed/backend/config"
	"github.com/pageza/mealfeed/backend/internal/database"
	"github.com/pageza/mealfeed/backend/internal/logging"
	"github.com/pageza/mealfeed/backend/internal/models"
)

//go:embed recipes.json
var defaultRecipes []byte

// RecipeData is one global recipe in the seed file.
type RecipeData struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Servings    int      `json:"servings"`
	Image       string   `json:"image"`
	Cuisines    []string `json:"cuisines"`
	Diets       []string `json:"diets"`
	Allergens   []string `json:"allergens"`
	Ingredients []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"ingredients"`
	Steps []string `json:"steps"`
}

func main() {
	file := flag.String("file", "", "JSON file of recipes to seed (defaults to the bundled set)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	data := defaultRecipes
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			logging.Fatal().Err(err).Str("file", *file).Msg("failed to read seed file")
		}
	}

	var recipes []RecipeData
	if err := json.Unmarshal(data, &recipes); err != nil {
		logging.Fatal().Err(err).Msg("failed to parse seed file")
	}

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	if cfg.DBDriver == "sqlite" {
		if err := database.AutoMigrate(db); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate sqlite database")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, err := seedRecipes(ctx, db, recipes)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to seed recipes")
	}
	logging.Info().Int("created", created).Int("total", len(recipes)).Msg("seeded global recipes")
}

// seedRecipes stores every recipe that has no global recipe with the same
// title yet. Recipes are staggered one minute apart in file order, the first
// being the newest.
func seedRecipes(ctx context.Context, db *gorm.DB, recipes []RecipeData) (int, error) {
	now := time.Now().UTC()
	created := 0
	for i, data := range recipes {
		title := strings.TrimSpace(data.Title)
		if title == "" {
			return created, fmt.Errorf("recipe %d has no title", i)
		}

		var count int64
		if err := db.WithContext(ctx).Model(&models.Recipe{}).Where("is_global = ? AND title = ?", true, title).Count(&count).Error; err != nil {
			return created, fmt.Errorf("failed to look up %q: %w", title, err)
		}
		if count > 0 {
			logging.Debug().Str("title", title).Msg("recipe already seeded")
			continue
		}

		recipe := toRecipe(data)
		recipe.CreatedAt = now.Add(-time.Duration(i) * time.Minute)
		if err := db.WithContext(ctx).Create(&recipe).Error; err != nil {
			return created, fmt.Errorf("failed to save %q: %w", title, err)
		}
		created++
	}
	return created, nil
}

func toRecipe(data RecipeData) models.Recipe {
	recipe := models.Recipe{
		Title:       strings.TrimSpace(data.Title),
		Description: data.Description,
		Servings:    data.Servings,
		SourceType:  models.SourceImported,
		IsGlobal:    true,
		Tags: models.RecipeTags{
			Cuisines:  models.StringList(data.Cuisines).Clean(),
			Diets:     models.StringList(data.Diets).Clean(),
			Allergens: models.StringList(data.Allergens).Clean(),
		},
	}
	if recipe.Servings <= 0 {
		recipe.Servings = 1
	}
	if data.Image != "" {
		img := data.Image
		recipe.Image = &img
	}
	for _, ing := range data.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			Name:     strings.TrimSpace(ing.Name),
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	for i, step := range data.Steps {
		recipe.Steps = append(recipe.Steps, models.RecipeStep{Position: i + 1, Text: step})
	}
	return recipe
}
