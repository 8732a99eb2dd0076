package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/mealfeed/backend/internal/models"
	"gorm.io/gorm"
)

var slugSeparators = regexp.MustCompile(`\s+`)

type HouseholdService struct {
	db *gorm.DB
}

func NewHouseholdService(db *gorm.DB) *HouseholdService {
	return &HouseholdService{db: db}
}

// Primary returns the household of the user's earliest membership, or nil
// when the user belongs to none.
func (s *HouseholdService) Primary(ctx context.Context, userID uuid.UUID) (*uuid.UUID, error) {
	return primaryHousehold(ctx, s.db, userID)
}

// RequirePrimary is Primary but fails with ErrNoHousehold instead of returning nil.
func (s *HouseholdService) RequirePrimary(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	id, err := s.Primary(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if id == nil {
		return uuid.Nil, ErrNoHousehold
	}
	return *id, nil
}

// List returns every household the user belongs to.
func (s *HouseholdService) List(ctx context.Context, userID uuid.UUID) ([]models.Household, error) {
	var memberships []models.HouseholdMember
	err := s.db.WithContext(ctx).
		Preload("Household").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}

	households := make([]models.Household, 0, len(memberships))
	for _, m := range memberships {
		if m.Household != nil {
			households = append(households, *m.Household)
		}
	}
	return households, nil
}

// Create makes a household named name with the user as its owner.
func (s *HouseholdService) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("household name is required")
	}

	household := models.Household{Name: name, Slug: Slugify(name)}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&household).Error; err != nil {
			return err
		}
		return tx.Create(&models.HouseholdMember{
			HouseholdID: household.ID,
			UserID:      userID,
			Role:        models.RoleOwner,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create household: %w", err)
	}
	return &household, nil
}

// Join adds the user to an existing household as a member. Joining twice is a no-op.
func (s *HouseholdService) Join(ctx context.Context, userID, householdID uuid.UUID) (*models.Household, error) {
	var household models.Household
	if err := s.db.WithContext(ctx).First(&household, "id = ?", householdID).Error; err != nil {
		return nil, notFound(err)
	}

	member := models.HouseholdMember{HouseholdID: household.ID, UserID: userID, Role: models.RoleMember}
	err := s.db.WithContext(ctx).
		Where("household_id = ? AND user_id = ?", household.ID, userID).
		FirstOrCreate(&member).Error
	if err != nil {
		return nil, fmt.Errorf("failed to join household: %w", err)
	}
	return &household, nil
}

// Slugify lowercases name, joins words with dashes and appends a short
// random suffix so equal names never collide.
func Slugify(name string) string {
	base := slugSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

func primaryHousehold(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*uuid.UUID, error) {
	var member models.HouseholdMember
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load household membership: %w", err)
	}
	return &member.HouseholdID, nil
}
