package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateDealRequest struct {
	CompanyName     string           `json:"companyName"     validate:"required,min=1,max=200"`
	Revenue         decimal.Decimal  `json:"revenue"         validate:"min=0"`
	SDE             *decimal.Decimal `json:"sde"`
	ValuationMin    *decimal.Decimal `json:"valuationMin"`
	ValuationMax    *decimal.Decimal `json:"valuationMax"`
	SDEMultiple     *decimal.Decimal `json:"sdeMultiple"`
	RevenueMultiple *decimal.Decimal `json:"revenueMultiple"`
	Commission      *decimal.Decimal `json:"commission"`
	Stage           string           `json:"stage"           validate:"required,oneof=onboarding valuation buyer_matching due_diligence sold"`
	Priority        string           `json:"priority"        validate:"omitempty,oneof=low medium high"`
	Description     *string          `json:"description"`
	Notes           *string          `json:"notes"`
	NextStepDays    *int             `json:"nextStepDays"    validate:"omitempty,min=0"`
	HealthScore     *int             `json:"healthScore"     validate:"omitempty,min=0,max=100"`
	OwnerID         string           `json:"ownerId"         validate:"omitempty,uuid"`
}

// UpdateDealRequest is a partial update: nil fields are left unchanged.
type UpdateDealRequest struct {
	CompanyName     *string          `json:"companyName"     validate:"omitempty,min=1,max=200"`
	Revenue         *decimal.Decimal `json:"revenue"`
	SDE             *decimal.Decimal `json:"sde"`
	ValuationMin    *decimal.Decimal `json:"valuationMin"`
	ValuationMax    *decimal.Decimal `json:"valuationMax"`
	SDEMultiple     *decimal.Decimal `json:"sdeMultiple"`
	RevenueMultiple *decimal.Decimal `json:"revenueMultiple"`
	Commission      *decimal.Decimal `json:"commission"`
	Stage           *string          `json:"stage"           validate:"omitempty,oneof=onboarding valuation buyer_matching due_diligence sold"`
	Priority        *string          `json:"priority"        validate:"omitempty,oneof=low medium high"`
	Description     *string          `json:"description"`
	NextStepDays    *int             `json:"nextStepDays"    validate:"omitempty,min=0"`
	HealthScore     *int             `json:"healthScore"     validate:"omitempty,min=0,max=100"`
	OwnerID         *string          `json:"ownerId"         validate:"omitempty,uuid"`
}

type UpdateNotesRequest struct {
	Notes *string `json:"notes" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DealResponse struct {
	ID              string           `json:"id"`
	CompanyName     string           `json:"companyName"`
	Revenue         decimal.Decimal  `json:"revenue"`
	SDE             *decimal.Decimal `json:"sde"`
	ValuationMin    *decimal.Decimal `json:"valuationMin"`
	ValuationMax    *decimal.Decimal `json:"valuationMax"`
	SDEMultiple     *decimal.Decimal `json:"sdeMultiple"`
	RevenueMultiple *decimal.Decimal `json:"revenueMultiple"`
	Commission      *decimal.Decimal `json:"commission"`
	Stage           string           `json:"stage"`
	Priority        string           `json:"priority"`
	Description     *string          `json:"description"`
	Notes           *string          `json:"notes"`
	NextStepDays    *int             `json:"nextStepDays"`
	Touches         int              `json:"touches"`
	AgeInStage      int              `json:"ageInStage"`
	HealthScore     int              `json:"healthScore"`
	OwnerID         string           `json:"ownerId"`
	Owner           string           `json:"owner"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type PinnedDocument struct {
	Slot     string           `json:"slot"`
	Source   string           `json:"source"` // kind | name
	Document DocumentResponse `json:"document"`
}
