package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SourceCustom   = "custom"
	SourceImported = "imported"
)

// Recipe is either global (visible to everyone) or owned by a household.
type Recipe struct {
	ID          uuid.UUID          `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt   time.Time          `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Title       string             `gorm:"size:255;not null" json:"title"`
	Description string             `gorm:"type:text" json:"description"`
	Servings    int                `gorm:"not null;default:1" json:"servings"`
	SourceType  string             `gorm:"size:32" json:"sourceType"`
	SourceURL   string             `gorm:"size:512" json:"sourceUrl,omitempty"`
	Image       *string            `gorm:"size:512" json:"image"`
	IsGlobal    bool               `gorm:"not null;default:false;index" json:"isGlobal"`
	HouseholdID *uuid.UUID         `gorm:"type:varchar(36);index" json:"householdId"`
	Tags        RecipeTags         `gorm:"type:jsonb" json:"tags"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []RecipeStep       `json:"steps"`
	Reviews     []RecipeReview     `json:"reviews"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

type RecipeIngredient struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
}

func (i *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}

type RecipeStep struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipeId"`
	Position int       `gorm:"not null" json:"order"`
	Text     string    `gorm:"type:text;not null" json:"text"`
}

func (s *RecipeStep) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
