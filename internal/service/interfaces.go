package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	ContextBuilder
}

// ContextBuilder resolves the ranking context of an authenticated caller.
type ContextBuilder interface {
	FeedContext(ctx context.Context, userID uuid.UUID) (*feed.Context, *uuid.UUID, error)
}

// CandidateProvider fetches the recipes a feed is ranked from.
type CandidateProvider interface {
	Candidates(ctx context.Context, householdID *uuid.UUID, query string, limit int) ([]models.Recipe, error)
	RecentGlobal(ctx context.Context, limit int) ([]models.Recipe, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GetVisible(ctx context.Context, id uuid.UUID, householdID *uuid.UUID) (*feed.ScoredRecipe, error)
	ListVisible(ctx context.Context, householdID *uuid.UUID, filter *types.RecipeListQuery) ([]feed.ScoredRecipe, error)
	CreateCustom(ctx context.Context, householdID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
}

// IFeedService defines the interface for feed assembly
type IFeedService interface {
	Personalized(ctx context.Context, userID uuid.UUID, filters feed.Filters) ([]feed.ScoredRecipe, error)
	Anonymous(ctx context.Context) ([]feed.ScoredRecipe, error)
}

// IHouseholdService defines the interface for household operations
type IHouseholdService interface {
	Primary(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error)
	RequirePrimary(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Household, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (*models.Household, error)
	Join(ctx context.Context, userID, householdID uuid.UUID) (*models.Household, error)
}

// IInventoryService defines the interface for inventory operations
type IInventoryService interface {
	List(ctx context.Context, householdID uuid.UUID) ([]models.InventoryItem, error)
	Add(ctx context.Context, householdID uuid.UUID, req *types.InventoryItemRequest) (*models.InventoryItem, error)
}

// IEngagementService defines reactions, reviews and bookmarks
type IEngagementService interface {
	React(ctx context.Context, userID, recipeID uuid.UUID, reaction models.ReactionType) (*models.RecipeReaction, error)
	Reviews(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeReview, error)
	Review(ctx context.Context, userID uuid.UUID, req *types.ReviewRequest) (*models.RecipeReview, error)
	Bookmarks(ctx context.Context, userID uuid.UUID) ([]feed.ScoredRecipe, error)
	ToggleBookmark(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
}
