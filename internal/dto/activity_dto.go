package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateActivityRequest struct {
	DealID        string     `json:"dealId"        validate:"omitempty,uuid"`
	BuyingPartyID string     `json:"buyingPartyId" validate:"omitempty,uuid"`
	Type          string     `json:"type"          validate:"required,oneof=task email meeting document system note"`
	Title         string     `json:"title"         validate:"required,min=1,max=200"`
	Description   *string    `json:"description"`
	Status        string     `json:"status"        validate:"omitempty,oneof=pending completed"`
	AssignedTo    *string    `json:"assignedTo"`
	DueDate       *time.Time `json:"dueDate"`
}

type UpdateActivityRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"      validate:"omitempty,oneof=pending completed"`
	AssignedTo  *string    `json:"assignedTo"`
	DueDate     *time.Time `json:"dueDate"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ActivityResponse struct {
	ID            string     `json:"id"`
	DealID        *string    `json:"dealId"`
	BuyingPartyID *string    `json:"buyingPartyId"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Status        string     `json:"status"`
	AssignedTo    *string    `json:"assignedTo"`
	DueDate       *time.Time `json:"dueDate"`
	CompletedAt   *time.Time `json:"completedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}
