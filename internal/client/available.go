package client

import (
	"context"

	"dealflow/internal/dto"
)

// AvailableParties lists the buying parties not yet matched to dealID,
// the only ones a new match may be created for.
func (c *Client) AvailableParties(ctx context.Context, dealID string) ([]dto.BuyingPartyResponse, error) {
	parties, err := c.ListBuyingParties(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := c.DealBuyers(ctx, dealID)
	if err != nil {
		return nil, err
	}
	matched := make(map[string]bool, len(rows))
	for _, r := range rows {
		matched[r.Match.BuyingPartyID] = true
	}
	out := make([]dto.BuyingPartyResponse, 0, len(parties))
	for _, p := range parties {
		if !matched[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}
