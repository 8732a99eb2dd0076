package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/mealfeed/backend/config"
	"github.com/pageza/mealfeed/backend/internal/database"
	"github.com/pageza/mealfeed/backend/internal/logging"
	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/service"
	"github.com/pageza/mealfeed/backend/internal/types"
)

const testPassword = "testpassword123"

type testUser struct {
	name    string
	email   string
	profile types.UpdateProfileRequest
}

func list(items ...string) *[]string { return &items }

var testUsers = []testUser{
	{
		name:  "John Doe",
		email: "john.doe@example.com",
		profile: types.UpdateProfileRequest{
			Diets:            list("vegan"),
			FavoriteCuisines: list("mexican", "thai"),
		},
	},
	{
		name:  "Jane Smith",
		email: "jane.smith@example.com",
		profile: types.UpdateProfileRequest{
			Allergies:           list("peanut", "dairy"),
			FavoriteCuisines:    list("italian"),
			FavoriteMeats:       list("chicken"),
			DislikedIngredients: list("mushroom"),
		},
	},
	{
		name:  "Bob Wilson",
		email: "bob.wilson@example.com",
		profile: types.UpdateProfileRequest{
			Diets:              list("keto"),
			FavoriteVegetables: list("spinach", "avocado"),
		},
	},
}

var pantry = []string{"rice", "egg", "onion", "soy sauce", "corn"}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

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

	if err := seedUsers(ctx, db, service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)); err != nil {
		logging.Fatal().Err(err).Msg("failed to seed test users")
	}
	logging.Info().Int("users", len(testUsers)).Str("password", testPassword).Msg("test users ready")
}

// seedUsers registers the test users, puts them in one shared household with
// a stocked pantry and sets their preferences. Users that already exist are
// left alone.
func seedUsers(ctx context.Context, db *gorm.DB, auth *service.AuthService) error {
	profiles := service.NewProfileService(db)
	households := service.NewHouseholdService(db)
	inventory := service.NewInventoryService(db)

	var household *models.Household
	for i, u := range testUsers {
		user, _, err := auth.Register(ctx, &types.RegisterRequest{Name: u.name, Email: u.email, Password: testPassword})
		if errors.Is(err, service.ErrUserExists) {
			logging.Info().Str("email", u.email).Msg("user already exists, skipping")
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", u.email, err)
		}

		profile := u.profile
		if _, err := profiles.UpsertProfile(ctx, user.ID, &profile); err != nil {
			return fmt.Errorf("failed to set profile for %s: %w", u.email, err)
		}

		if household == nil {
			if household, err = households.Create(ctx, user.ID, "Test Household"); err != nil {
				return err
			}
			for _, name := range pantry {
				if _, err := inventory.Add(ctx, household.ID, &types.InventoryItemRequest{Name: name, Quantity: 1}); err != nil {
					return err
				}
			}
		} else if _, err := households.Join(ctx, user.ID, household.ID); err != nil {
			return err
		}

		logging.Info().Int("n", i+1).Str("email", u.email).Msg("created test user")
	}
	return nil
}
