package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateBuyingPartyRequest struct {
	Name                 string           `json:"name"                 validate:"required,min=1,max=200"`
	TargetAcquisitionMin *int             `json:"targetAcquisitionMin" validate:"omitempty,min=0,max=100"`
	TargetAcquisitionMax *int             `json:"targetAcquisitionMax" validate:"omitempty,min=0,max=100"`
	BudgetMin            *decimal.Decimal `json:"budgetMin"`
	BudgetMax            *decimal.Decimal `json:"budgetMax"`
	Timeline             *string          `json:"timeline"`
	Status               string           `json:"status"`
	Notes                *string          `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type BuyingPartyResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	TargetAcquisitionMin *int             `json:"targetAcquisitionMin"`
	TargetAcquisitionMax *int             `json:"targetAcquisitionMax"`
	BudgetMin            *decimal.Decimal `json:"budgetMin"`
	BudgetMax            *decimal.Decimal `json:"budgetMax"`
	Timeline             *string          `json:"timeline"`
	Status               string           `json:"status"`
	Notes                *string          `json:"notes"`
	CreatedAt            time.Time        `json:"createdAt"`
}
