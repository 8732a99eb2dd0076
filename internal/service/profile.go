package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/mealfeed/backend/internal/feed"
	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/types"
	"gorm.io/gorm"
)

// ProfileService handles user profiles and resolves the per-request feed context.
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile. A user without a stored profile
// gets the defaults: household size 1 and empty preference lists.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = emptyProfile(userID)
	}
	return profile, nil
}

// UpsertProfile creates or updates the user's profile. Preference lists are
// trimmed, lowercased and de-duplicated before they are stored.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = emptyProfile(userID)
	}

	profile.HeightCm = req.HeightCm
	profile.WeightKg = req.WeightKg
	profile.AgeYears = req.AgeYears
	if req.HouseholdSize != nil {
		profile.HouseholdSize = *req.HouseholdSize
	}
	setList(&profile.Diets, req.Diets)
	setList(&profile.Allergies, req.Allergies)
	setList(&profile.FavoriteCuisines, req.FavoriteCuisines)
	setList(&profile.FavoriteMeats, req.FavoriteMeats)
	setList(&profile.FavoriteVegetables, req.FavoriteVegetables)
	setList(&profile.DislikedIngredients, req.DislikedIngredients)

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// FeedContext resolves everything the ranking needs to know about the caller:
// profile lists, the inventory of their household and their reactions. The
// household id is returned for the candidate query; it is nil when the user
// belongs to no household.
func (s *ProfileService) FeedContext(ctx context.Context, userID uuid.UUID) (*feed.Context, *uuid.UUID, error) {
	profile, err := s.find(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	householdID, err := primaryHousehold(ctx, s.db, userID)
	if err != nil {
		return nil, nil, err
	}

	inventory := feed.NameSet{}
	if householdID != nil {
		names, err := inventoryNames(ctx, s.db, *householdID)
		if err != nil {
			return nil, nil, err
		}
		inventory = feed.NewNameSet(names...)
	}

	var reactions []models.RecipeReaction
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&reactions).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load reactions: %w", err)
	}
	reactionMap := make(map[uuid.UUID]models.ReactionType, len(reactions))
	for _, r := range reactions {
		reactionMap[r.RecipeID] = r.Type
	}

	return &feed.Context{
		Profile:   feed.ProfileFrom(profile),
		Inventory: inventory,
		Reactions: reactionMap,
	}, householdID, nil
}

func (s *ProfileService) find(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

func emptyProfile(userID uuid.UUID) *models.UserProfile {
	return &models.UserProfile{
		UserID:              userID,
		HouseholdSize:       1,
		Diets:               models.StringList{},
		Allergies:           models.StringList{},
		FavoriteCuisines:    models.StringList{},
		FavoriteMeats:       models.StringList{},
		FavoriteVegetables:  models.StringList{},
		DislikedIngredients: models.StringList{},
	}
}

func setList(dst *models.StringList, src *[]string) {
	if src != nil {
		*dst = models.StringList(*src).Normalize()
	}
}
