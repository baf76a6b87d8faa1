package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is a file record attached to a deal or buying party.
// Status: draft | sent | signed. Kind optionally tags the document
// (valuation_excel, valuation_ppt, cim_ppt, nda_pdf, other).
type Document struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DealID        *uuid.UUID `gorm:"type:uuid;index"`
	BuyingPartyID *uuid.UUID `gorm:"type:uuid;index"`
	Name          string     `gorm:"not null"`
	Status        string     `gorm:"type:varchar(16);not null;default:draft"`
	URL           *string    `gorm:"column:url"`
	Kind          *string    `gorm:"type:varchar(32)"`
	CreatedAt     time.Time
}

func (Document) TableName() string { return "documents" }

func (d *Document) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}
