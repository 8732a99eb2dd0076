package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Household is a group of users sharing inventory and custom recipes.
type Household struct {
	ID        uuid.UUID         `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Name      string            `gorm:"not null" json:"name"`
	Slug      string            `gorm:"uniqueIndex;not null" json:"slug"`
	Members   []HouseholdMember `json:"members,omitempty"`
}

func (h *Household) BeforeCreate(tx *gorm.DB) error {
	assignID(&h.ID)
	return nil
}

type HouseholdMember struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"createdAt"`
	HouseholdID uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_member_household_user" json:"householdId"`
	UserID      uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_member_household_user;index" json:"userId"`
	Role        string     `gorm:"not null;default:'member'" json:"role"`
	Household   *Household `json:"household,omitempty"`
}

func (m *HouseholdMember) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}

type InventoryItem struct {
	ID             uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	HouseholdID    uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"householdId"`
	Name           string     `gorm:"not null" json:"name"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	Location       string     `json:"location"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}
