package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DealBuyerMatch joins one Deal and one BuyingParty. Stage is the single
// current pipeline position; Stages is the independent milestone checklist
// stored comma-joined.
type DealBuyerMatch struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DealID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_pair"`
	BuyingPartyID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_pair;index"`
	TargetAcquisition *int
	Budget            *decimal.Decimal `gorm:"type:numeric(15,2)"`
	Status            string           `gorm:"not null;default:interested"`
	Stage             string           `gorm:"type:varchar(32);not null;default:new"`
	Stages            string           `gorm:"not null;default:''"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (DealBuyerMatch) TableName() string { return "deal_buyer_matches" }

func (m *DealBuyerMatch) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	return nil
}
