package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/mealfeed/backend/internal/models"
	"github.com/pageza/mealfeed/backend/internal/types"
	"gorm.io/gorm"
)

type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

func (s *InventoryService) List(ctx context.Context, householdID uuid.UUID) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	err := s.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (s *InventoryService) Add(ctx context.Context, householdID uuid.UUID, req *types.InventoryItemRequest) (*models.InventoryItem, error) {
	item := models.InventoryItem{
		HouseholdID:    householdID,
		Name:           strings.TrimSpace(req.Name),
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		Location:       req.Location,
		ExpirationDate: req.ExpirationDate,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add inventory item: %w", err)
	}
	return &item, nil
}

func inventoryNames(ctx context.Context, db *gorm.DB, householdID uuid.UUID) ([]string, error) {
	var names []string
	err := db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("household_id = ?", householdID).
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory names: %w", err)
	}
	for i, n := range names {
		names[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return names, nil
}
