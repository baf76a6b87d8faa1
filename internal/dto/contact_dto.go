package dto

type CreateContactRequest struct {
	Name       string  `json:"name"       validate:"required,min=1,max=200"`
	Role       string  `json:"role"       validate:"required,min=1,max=100"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	EntityID   string  `json:"entityId"   validate:"required_with=EntityType,omitempty,uuid"`
	EntityType string  `json:"entityType" validate:"required_with=EntityID,omitempty,oneof=deal party"`
}

type ContactFilter struct {
	EntityID   string `form:"entityId"   validate:"required,uuid"`
	EntityType string `form:"entityType" validate:"required,oneof=deal party"`
}

type ContactResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}
