package types

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
}

// FeedQuery is bound from the feed query string. Only hideSkipped=true
// enables the skip filter; any other value leaves it off.
type FeedQuery struct {
	Query       string `form:"q"`
	Diet        string `form:"diet"`
	Cuisine     string `form:"cuisine"`
	HideSkipped string `form:"hideSkipped"`
}

// SkipFilter reports whether skipped recipes should be dropped.
func (q FeedQuery) SkipFilter() bool {
	return q.HideSkipped == "true"
}

// RecipeListQuery is bound from the recipe listing query string.
type RecipeListQuery struct {
	Query   string `form:"q"`
	Diet    string `form:"diet"`
	Cuisine string `form:"cuisine"`
}

// IngredientInput is one ingredient of a custom recipe
type IngredientInput struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// StepInput is one instruction of a custom recipe; order is assigned from position.
type StepInput struct {
	Text string `json:"text" binding:"required"`
}

// CreateRecipeRequest represents the request body for creating a household recipe
type CreateRecipeRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Servings    *int              `json:"servings" binding:"omitempty,min=1"`
	Image       *string           `json:"image"`
	Cuisines    []string          `json:"cuisines"`
	Diets       []string          `json:"diets"`
	Allergens   []string          `json:"allergens"`
	Ingredients []IngredientInput `json:"ingredients" binding:"dive"`
	Steps       []StepInput       `json:"steps" binding:"dive"`
}

// ReactionRequest sets the caller's reaction on a recipe
type ReactionRequest struct {
	RecipeID uuid.UUID `json:"recipeId" binding:"required"`
	Type     string    `json:"type" binding:"required"`
}

// ReviewRequest creates or replaces the caller's review of a recipe
type ReviewRequest struct {
	RecipeID uuid.UUID `json:"recipeId" binding:"required"`
	Rating   int       `json:"rating" binding:"required,min=1,max=5"`
	Comment  string    `json:"comment" binding:"max=2000"`
}

// BookmarkRequest toggles a bookmark
type BookmarkRequest struct {
	RecipeID uuid.UUID `json:"recipeId" binding:"required"`
}

// BookmarkResponse reports the bookmark state after a toggle
type BookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

// InventoryItemRequest adds an item to the caller's household inventory
type InventoryItemRequest struct {
	Name           string     `json:"name" binding:"required"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	Location       string     `json:"location"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

// HouseholdRequest creates or joins a household
type HouseholdRequest struct {
	Action      string    `json:"action" binding:"required,oneof=create join"`
	Name        string    `json:"name"`
	HouseholdID uuid.UUID `json:"householdId"`
}

// UpdateProfileRequest replaces the caller's body metrics and preference lists.
// Omitted lists are left unchanged.
type UpdateProfileRequest struct {
	HeightCm            *float64  `json:"heightCm" binding:"omitempty,gt=0"`
	WeightKg            *float64  `json:"weightKg" binding:"omitempty,gt=0"`
	AgeYears            *int      `json:"ageYears" binding:"omitempty,gt=0"`
	HouseholdSize       *int      `json:"householdSize" binding:"omitempty,min=1"`
	Diets               *[]string `json:"diets"`
	Allergies           *[]string `json:"allergies"`
	FavoriteCuisines    *[]string `json:"favoriteCuisines"`
	FavoriteMeats       *[]string `json:"favoriteMeats"`
	FavoriteVegetables  *[]string `json:"favoriteVegetables"`
	DislikedIngredients *[]string `json:"dislikedIngredients"`
}
