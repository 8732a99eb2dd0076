package testhelpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/mealfeed/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every user made by CreateTestUser.
const TestPassword = "testpassword123"

// CreateTestUser creates a user with a unique email and TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	id := uuid.New()
	user := &models.User{
		ID:           id,
		Name:         "Test User",
		Email:        fmt.Sprintf("testuser+%s@example.com", id.String()[:8]),
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestProfile stores profile for userID.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, profile models.UserProfile) *models.UserProfile {
	t.Helper()
	profile.UserID = userID
	if profile.HouseholdSize == 0 {
		profile.HouseholdSize = 1
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return &profile
}

// CreateTestHousehold creates a household owned by userID.
func CreateTestHousehold(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Household {
	t.Helper()
	household := &models.Household{Name: "Test Household", Slug: "test-" + uuid.NewString()[:8]}
	if err := db.Create(household).Error; err != nil {
		t.Fatalf("failed to create test household: %v", err)
	}
	member := &models.HouseholdMember{HouseholdID: household.ID, UserID: userID, Role: models.RoleOwner}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create household membership: %v", err)
	}
	return household
}

// AddInventory stores one inventory item per name in the household.
func AddInventory(t *testing.T, db *gorm.DB, householdID uuid.UUID, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := db.Create(&models.InventoryItem{HouseholdID: householdID, Name: n, Quantity: 1}).Error; err != nil {
			t.Fatalf("failed to create inventory item: %v", err)
		}
	}
}

// RecipeFixture describes a recipe to insert.
type RecipeFixture struct {
	Title       string
	Description string
	Global      bool
	HouseholdID *uuid.UUID
	Tags        models.RecipeTags
	Ingredients []string
	Image       string
	// Age is subtracted from now to set CreatedAt.
	Age time.Duration
}

// CreateTestRecipe inserts a recipe with its ingredients.
func CreateTestRecipe(t *testing.T, db *gorm.DB, f RecipeFixture) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		CreatedAt:   time.Now().Add(-f.Age).UTC().Truncate(time.Millisecond),
		Title:       f.Title,
		Description: f.Description,
		Servings:    2,
		SourceType:  models.SourceImported,
		IsGlobal:    f.Global,
		HouseholdID: f.HouseholdID,
		Tags:        f.Tags,
	}
	if f.Image != "" {
		img := f.Image
		recipe.Image = &img
	}
	for _, name := range f.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{Name: name, Quantity: 1})
	}
	recipe.Steps = []models.RecipeStep{{Position: 1, Text: "Cook."}}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}

// CreateTestReview stores a review; a nil rating is stored as NULL.
func CreateTestReview(t *testing.T, db *gorm.DB, userID, recipeID uuid.UUID, rating *int) *models.RecipeReview {
	t.Helper()
	review := &models.RecipeReview{UserID: userID, RecipeID: recipeID, Rating: rating}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create test review: %v", err)
	}
	return review
}

// CreateTestReaction stores a reaction.
func CreateTestReaction(t *testing.T, db *gorm.DB, userID, recipeID uuid.UUID, kind models.ReactionType) {
	t.Helper()
	if err := db.Create(&models.RecipeReaction{UserID: userID, RecipeID: recipeID, Type: kind}).Error; err != nil {
		t.Fatalf("failed to create test reaction: %v", err)
	}
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
