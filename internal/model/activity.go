package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is a timeline entry on a deal or buying party.
// Type: task | email | meeting | document | system | note
// Status: pending | completed
type Activity struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DealID        *uuid.UUID `gorm:"type:uuid;index"`
	BuyingPartyID *uuid.UUID `gorm:"type:uuid;index"`
	Type          string     `gorm:"type:varchar(16);not null"`
	Title         string     `gorm:"not null"`
	Description   *string
	Status        string `gorm:"type:varchar(16);not null;default:pending"`
	AssignedTo    *string
	DueDate       *time.Time
	CompletedAt   *time.Time
	// RemindedAt is set once a due-date reminder has been queued.
	RemindedAt *time.Time
	CreatedAt  time.Time
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}
