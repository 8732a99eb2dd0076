package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

// UserProfile holds body metrics and the preference lists that drive the
// personalized feed. All lists are stored lowercased.
type UserProfile struct {
	ID                  uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID              uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	HeightCm            *float64   `json:"heightCm"`
	WeightKg            *float64   `json:"weightKg"`
	AgeYears            *int       `json:"ageYears"`
	HouseholdSize       int        `gorm:"not null;default:1" json:"householdSize"`
	Diets               StringList `gorm:"type:jsonb;not null;default:'[]'" json:"diets"`
	Allergies           StringList `gorm:"type:jsonb;not null;default:'[]'" json:"allergies"`
	FavoriteCuisines    StringList `gorm:"type:jsonb;not null;default:'[]'" json:"favoriteCuisines"`
	FavoriteMeats       StringList `gorm:"type:jsonb;not null;default:'[]'" json:"favoriteMeats"`
	FavoriteVegetables  StringList `gorm:"type:jsonb;not null;default:'[]'" json:"favoriteVegetables"`
	DislikedIngredients StringList `gorm:"type:jsonb;not null;default:'[]'" json:"dislikedIngredients"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
