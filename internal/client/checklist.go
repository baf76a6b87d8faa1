package client

import (
	"context"
	"net/http"

	"dealflow/internal/cache"
	"dealflow/internal/dto"
	"dealflow/internal/pipeline"
)

// ToggleChecklistItem adds or removes key from the match checklist and
// writes the whole field back. On failure the cached match is left as the
// server last confirmed it. Concurrent toggles race: last write wins.
func (c *Client) ToggleChecklistItem(ctx context.Context, matchID, key string, checked bool) (dto.MatchResponse, error) {
	current, err := c.GetMatch(ctx, matchID)
	if err != nil {
		return dto.MatchResponse{}, err
	}
	next := pipeline.ParseChecklist(current.Stages).Toggle(key, checked)

	var resp dto.MatchResponse
	stages := next.String()
	err = c.do(ctx, http.MethodPatch, "/api/matches/"+matchID, nil, dto.UpdateChecklistRequest{Stages: &stages}, &resp)
	if err != nil {
		return current, err
	}
	c.cache.Invalidate(cache.UpdateChecklist, cache.Scope{MatchID: matchID, DealID: resp.DealID})
	return resp, nil
}
