package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BuyingParty is a prospective acquirer.
type BuyingParty struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"not null"`
	// acquisition targets are percentages of the company
	TargetAcquisitionMin *int
	TargetAcquisitionMax *int
	BudgetMin            *decimal.Decimal `gorm:"type:numeric(15,2)"`
	BudgetMax            *decimal.Decimal `gorm:"type:numeric(15,2)"`
	Timeline             *string
	Status               string `gorm:"type:varchar(32);not null;default:evaluating"`
	Notes                *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (BuyingParty) TableName() string { return "buying_parties" }

func (p *BuyingParty) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}
