package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a person attached to deals (deal_contacts) or buying parties
// (party_contacts). The contact row itself does not know its owner.
type Contact struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"not null"`
	Role  string    `gorm:"not null"`
	Email *string
	Phone *string
}

func (Contact) TableName() string { return "contacts" }

func (c *Contact) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// DealContact links a contact to the deal's company.
type DealContact struct {
	DealID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContactID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (DealContact) TableName() string { return "deal_contacts" }

// PartyContact links a contact to a buying party.
type PartyContact struct {
	BuyingPartyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContactID     uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (PartyContact) TableName() string { return "party_contacts" }
