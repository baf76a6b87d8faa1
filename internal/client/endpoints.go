package client

import (
	"context"
	"net/http"
	"net/url"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
)

// ── Auth ─────────────────────────────────────────────────────────────────────

// Login authenticates and stores the new session.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, dto.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.cache.Clear()
	if err := c.session.Save(Credentials{Token: resp.AccessToken, UserID: resp.UserID, Email: resp.Email}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout forgets the session and every cached response.
func (c *Client) Logout() error {
	c.cache.Clear()
	return c.session.Clear()
}

func (c *Client) Register(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	var resp dto.UserResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, dto.RegisterRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/password-reset-request", nil, dto.PasswordResetRequest{Email: email}, nil)
}

func (c *Client) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	body := dto.PasswordResetConfirmRequest{Token: token, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, "/api/auth/password-reset-confirm", nil, body, nil)
}

func (c *Client) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	var resp []dto.UserResponse
	err := c.do(ctx, http.MethodGet, "/api/users", nil, nil, &resp)
	return resp, err
}

// ── Deals ────────────────────────────────────────────────────────────────────

func (c *Client) ListDeals(ctx context.Context) ([]dto.DealResponse, error) {
	return fetch[[]dto.DealResponse](ctx, c.cache, cache.DealsKey())
}

func (c *Client) GetDeal(ctx context.Context, id string) (dto.DealResponse, error) {
	return fetch[dto.DealResponse](ctx, c.cache, cache.DealKey(id))
}

func (c *Client) CreateDeal(ctx context.Context, req dto.CreateDealRequest) (dto.DealResponse, error) {
	var resp dto.DealResponse
	if err := c.do(ctx, http.MethodPost, "/api/deals", nil, req, &resp); err != nil {
		return resp, err
	}
	c.cache.Invalidate(cache.CreateDeal, cache.Scope{DealID: resp.ID})
	return resp, nil
}

func (c *Client) UpdateDeal(ctx context.Context, id string, req dto.UpdateDealRequest) (dto.DealResponse, error) {
	var resp dto.DealResponse
	if err := c.do(ctx, http.MethodPatch, "/api/deals/"+id, nil, req, &resp); err != nil {
		return resp, err
	}
	c.cache.Invalidate(cache.UpdateDeal, cache.Scope{DealID: id})
	return resp, nil
}

func (c *Client) DeleteDeal(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/deals/"+id, nil, nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(cache.DeleteDeal, cache.Scope{
		DealID:   id,
		MatchIDs: c.cache.cachedMatches(func(m dto.MatchResponse) bool { return m.DealID == id }),
	})
	return nil
}

// SaveNotes replaces the deal's notes with the full text.
func (c *Client) SaveNotes(ctx context.Context, dealID, notes string) (dto.DealResponse, error) {
	var resp dto.DealResponse
	err := c.do(ctx, http.MethodPatch, "/api/deals/"+dealID+"/notes", nil, dto.UpdateNotesRequest{Notes: &notes}, &resp)
	if err != nil {
		return resp, err
	}
	c.cache.Invalidate(cache.SaveNotes, cache.Scope{DealID: dealID})
	return resp, nil
}

// DealBuyers is the deal's buyer list: one row per match.
func (c *Client) DealBuyers(ctx context.Context, dealID string) ([]dto.BuyerMatchRow, error) {
	return fetch[[]dto.BuyerMatchRow](ctx, c.cache, cache.DealBuyersKey(dealID))
}

func (c *Client) BuyersWithNDA(ctx context.Context, dealID string) ([]dto.BuyerMatchRow, error) {
	var resp []dto.BuyerMatchRow
	err := c.do(ctx, http.MethodGet, "/api/deals/"+dealID+"/buyers-with-nda", nil, nil, &resp)
	return resp, err
}

func (c *Client) PinnedDocuments(ctx context.Context, dealID string) ([]dto.PinnedDocument, error) {
	var resp []dto.PinnedDocument
	err := c.do(ctx, http.MethodGet, "/api/deals/"+dealID+"/pinned-documents", nil, nil, &resp)
	return resp, err
}

// ── Matches ──────────────────────────────────────────────────────────────────

func (c *Client) GetMatch(ctx context.Context, id string) (dto.MatchResponse, error) {
	return fetch[dto.MatchResponse](ctx, c.cache, cache.MatchKey(id))
}

func (c *Client) ListMatches(ctx context.Context, dealID string) ([]dto.MatchResponse, error) {
	var q url.Values
	if dealID != "" {
		q = url.Values{"dealId": {dealID}}
	}
	var resp []dto.MatchResponse
	err := c.do(ctx, http.MethodGet, "/api/deal-buyer-matches", q, nil, &resp)
	return resp, err
}

// CreateMatch links a party to a deal with the server defaults
// (status "interested", stage "new").
func (c *Client) CreateMatch(ctx context.Context, dealID, partyID string) (dto.MatchResponse, error) {
	var resp dto.MatchResponse
	req := dto.CreateMatchRequest{DealID: dealID, BuyingPartyID: partyID}
	if err := c.do(ctx, http.MethodPost, "/api/deal-buyer-matches", nil, req, &resp); err != nil {
		return resp, err
	}
	c.cache.Invalidate(cache.CreateMatch, cache.Scope{DealID: dealID, MatchID: resp.ID})
	return resp, nil
}

func (c *Client) UpdateMatch(ctx context.Context, id string, req dto.UpdateMatchRequest) (dto.MatchResponse, error) {
	var resp dto.MatchResponse
	if err := c.do(ctx, http.MethodPatch, "/api/deal-buyer-matches/"+id, nil, req, &resp); err != nil {
		return resp, err
	}
	c.cache.Invalidate(cache.UpdateMatch, cache.Scope{DealID: resp.DealID, MatchID: id})
	return resp, nil
}

// DeleteMatch removes one match; dealID names the buyer list to refresh.
func (c *Client) DeleteMatch(ctx context.Context, matchID, dealID string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/deal-buyer-matches/"+matchID, nil, nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(cache.DeleteMatch, cache.Scope{DealID: dealID, MatchID: matchID})
	return nil
}

// ── Buying parties ───────────────────────────────────────────────────────────

func (c *Client) ListBuyingParties(ctx context.Context) ([]dto.BuyingPartyResponse, error) {
	return fetch[[]dto.BuyingPartyResponse](ctx, c.cache, cache.BuyingPartiesKey())
}

func (c *Client) GetBuyingParty(ctx context.Context, id string) (dto.BuyingPartyResponse, error) {
	var resp dto.BuyingPartyResponse
	err := c.do(ctx, http.MethodGet, "/api/buying-parties/"+id, nil, nil, &resp)
	return resp, err
}

func (c *Client) CreateBuyingParty(ctx context.Context, req dto.CreateBuyingPartyRequest) (dto.BuyingPartyResponse, error) {
	var resp dto.BuyingPartyResponse
	if err := c.do(ctx, http.MethodPost, "/api/buying-parties", nil, req, &resp); err != nil {
		return resp, err
	}
	c.cache.Invalidate(cache.CreateParty, cache.Scope{})
	return resp, nil
}

// DeleteBuyingParty deletes one party. The server cascades its matches, so
// every cached buyer list and every cached match of the party is refreshed
// along with the party list.
func (c *Client) DeleteBuyingParty(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/buying-parties/"+id, nil, nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(cache.DeleteParty, cache.Scope{
		EntityID: id,
		DealIDs:  c.cache.cachedBuyerLists(),
		MatchIDs: c.cache.cachedMatches(func(m dto.MatchResponse) bool { return m.BuyingPartyID == id }),
	})
	return nil
}

// ── Contacts ─────────────────────────────────────────────────────────────────

func (c *Client) ListContacts(ctx context.Context, entityID, entityType string) ([]dto.ContactResponse, error) {
	return fetch[[]dto.ContactResponse](ctx, c.cache, cache.ContactsKey(entityID, entityType))
}

func (c *Client) CreateContact(ctx context.Context, req dto.CreateContactRequest) (dto.ContactResponse, error) {
	var resp dto.ContactResponse
	if err := c.do(ctx, http.MethodPost, "/api/contacts", nil, req, &resp); err != nil {
		return resp, err
	}
	scope := cache.Scope{EntityID: req.EntityID, EntityType: req.EntityType}
	if req.EntityType == "party" && req.EntityID != "" {
		scope.DealIDs = c.cache.buyerListsWithParty(req.EntityID)
	}
	c.cache.Invalidate(cache.CreateContact, scope)
	return resp, nil
}

// ── Activities ───────────────────────────────────────────────────────────────

func (c *Client) ListActivities(ctx context.Context, entityID string) ([]dto.ActivityResponse, error) {
	return fetch[[]dto.ActivityResponse](ctx, c.cache, cache.ActivitiesKey(entityID))
}

func (c *Client) CreateActivity(ctx context.Context, req dto.CreateActivityRequest) (dto.ActivityResponse, error) {
	var resp dto.ActivityResponse
	if err := c.do(ctx, http.MethodPost, "/api/activities", nil, req, &resp); err != nil {
		return resp, err
	}
	c.invalidateActivity(cache.CreateActivity, resp)
	return resp, nil
}

func (c *Client) UpdateActivity(ctx context.Context, id string, req dto.UpdateActivityRequest) (dto.ActivityResponse, error) {
	var resp dto.ActivityResponse
	if err := c.do(ctx, http.MethodPatch, "/api/activities/"+id, nil, req, &resp); err != nil {
		return resp, err
	}
	c.invalidateActivity(cache.UpdateActivity, resp)
	return resp, nil
}

// an activity shows up on both its deal's and its party's timeline
func (c *Client) invalidateActivity(m cache.Mutation, a dto.ActivityResponse) {
	for _, id := range []*string{a.DealID, a.BuyingPartyID} {
		if id != nil {
			c.cache.Invalidate(m, cache.Scope{EntityID: *id})
		}
	}
}

// ── Documents ────────────────────────────────────────────────────────────────

func (c *Client) ListDocuments(ctx context.Context, entityID string) ([]dto.DocumentResponse, error) {
	return fetch[[]dto.DocumentResponse](ctx, c.cache, cache.DocumentsKey(entityID))
}
