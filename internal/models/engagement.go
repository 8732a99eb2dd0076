package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionType is a user's explicit signal on a recipe
type ReactionType string

const (
	ReactionHeart ReactionType = "heart"
	ReactionSkip  ReactionType = "skip"
)

// Valid reports whether t is a known reaction kind
func (t ReactionType) Valid() bool {
	return t == ReactionHeart || t == ReactionSkip
}

// RecipeReview is one user's rating of a recipe. A NULL rating counts as 0
// when aggregated.
type RecipeReview struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_recipe" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_recipe;index" json:"recipeId"`
	Rating    *int      `json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	User      *User     `json:"user,omitempty"`
}

func (r *RecipeReview) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

// RecipeReaction holds at most one reaction per (user, recipe).
type RecipeReaction struct {
	ID        uuid.UUID    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	UserID    uuid.UUID    `gorm:"type:varchar(36);not null;uniqueIndex:idx_reaction_user_recipe" json:"userId"`
	RecipeID  uuid.UUID    `gorm:"type:varchar(36);not null;uniqueIndex:idx_reaction_user_recipe" json:"recipeId"`
	Type      ReactionType `gorm:"size:16;not null" json:"type"`
}

func (r *RecipeReaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

type RecipeBookmark struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmark_user_recipe" json:"userId"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmark_user_recipe" json:"recipeId"`
	Recipe    Recipe    `json:"recipe"`
}

func (b *RecipeBookmark) BeforeCreate(tx *gorm.DB) error {
	assignID(&b.ID)
	return nil
}

// All lists every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserProfile{},
		&Household{},
		&HouseholdMember{},
		&InventoryItem{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeStep{},
		&RecipeReview{},
		&RecipeReaction{},
		&RecipeBookmark{},
	}
}
