package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deal is a company listed for sale.
// Stage: onboarding | valuation | buyer_matching | due_diligence | sold
type Deal struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyName     string           `gorm:"not null"`
	Revenue         decimal.Decimal  `gorm:"type:numeric(15,2);not null"`
	SDE             *decimal.Decimal `gorm:"column:sde;type:numeric(15,2)"`
	ValuationMin    *decimal.Decimal `gorm:"type:numeric(15,2)"`
	ValuationMax    *decimal.Decimal `gorm:"type:numeric(15,2)"`
	SDEMultiple     *decimal.Decimal `gorm:"column:sde_multiple;type:numeric(5,2)"`
	RevenueMultiple *decimal.Decimal `gorm:"type:numeric(5,2)"`
	Commission      *decimal.Decimal `gorm:"type:numeric(5,2)"`
	Stage           string           `gorm:"type:varchar(32);not null;index"`
	Priority        string           `gorm:"type:varchar(16);not null;default:medium"`
	Description     *string
	Notes           *string
	NextStepDays    *int
	Touches         int       `gorm:"not null;default:0"`
	AgeInStage      int       `gorm:"not null;default:0"`
	HealthScore     int       `gorm:"not null"`
	OwnerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Owner           string    `gorm:"not null"` // owner email, denormalized for display
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Deal) TableName() string { return "deals" }

func (d *Deal) BeforeCreate(*gorm.DB) error {
	assignID(&d.ID)
	return nil
}
