package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMatchRequest struct {
	DealID            string           `json:"dealId"            validate:"required,uuid"`
	BuyingPartyID     string           `json:"buyingPartyId"     validate:"required,uuid"`
	Status            *string          `json:"status"            validate:"omitempty,min=1,max=64"`
	Stage             *string          `json:"stage"`
	TargetAcquisition *int             `json:"targetAcquisition" validate:"omitempty,min=0,max=100"`
	Budget            *decimal.Decimal `json:"budget"`
}

type UpdateMatchRequest struct {
	Status            *string          `json:"status"            validate:"omitempty,min=1,max=64"`
	Stage             *string          `json:"stage"`
	TargetAcquisition *int             `json:"targetAcquisition" validate:"omitempty,min=0,max=100"`
	Budget            *decimal.Decimal `json:"budget"`
}

// UpdateChecklistRequest replaces the whole checklist field.
type UpdateChecklistRequest struct {
	Stages *string `json:"stages" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MatchResponse struct {
	ID                string           `json:"id"`
	DealID            string           `json:"dealId"`
	BuyingPartyID     string           `json:"buyingPartyId"`
	TargetAcquisition *int             `json:"targetAcquisition"`
	Budget            *decimal.Decimal `json:"budget"`
	Status            string           `json:"status"`
	Stage             string           `json:"stage"`
	Stages            string           `json:"stages"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// BuyerMatchRow is one line of a deal's buyer list.
type BuyerMatchRow struct {
	Match   MatchResponse       `json:"match"`
	Party   BuyingPartyResponse `json:"party"`
	Contact *ContactResponse    `json:"contact"`
}
