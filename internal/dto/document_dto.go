package dto

import "time"

type DocumentResponse struct {
	ID            string    `json:"id"`
	DealID        *string   `json:"dealId"`
	BuyingPartyID *string   `json:"buyingPartyId"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	URL           *string   `json:"url"`
	Kind          *string   `json:"kind"`
	CreatedAt     time.Time `json:"createdAt"`
}
