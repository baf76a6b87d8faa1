package client

import (
	"context"
	"fmt"
	"sync"
)

const bulkConcurrency = 4

// BulkError reports the items of a best-effort batch that failed.
type BulkError struct {
	Total  int
	Failed map[string]error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("Failed to delete %d of %d parties", len(e.Failed), e.Total)
}

// DeleteBuyingParties deletes every distinct id independently. Parties that
// were deleted stay deleted when others fail; the returned *BulkError lists
// the failures.
func (c *Client) DeleteBuyingParties(ctx context.Context, ids []string) error {
	ids = distinct(ids)
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		failed = make(map[string]error)
		sem    = make(chan struct{}, bulkConcurrency)
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if err := c.DeleteBuyingParty(ctx, id); err != nil {
				mu.Lock()
				failed[id] = err
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	if len(failed) > 0 {
		return &BulkError{Total: len(ids), Failed: failed}
	}
	return nil
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
