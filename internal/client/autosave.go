package client

import (
	"context"
	"sync"
	"time"

	"dealflow/internal/dto"

	"github.com/rs/zerolog/log"
)

const defaultAutosaveDelay = 500 * time.Millisecond

// NotesAutosaver debounces edits to a deal's notes. Each edit that differs
// from the last server value restarts the timer; when it fires the full
// latest draft is saved. Drafts silently overwrite external changes.
type NotesAutosaver struct {
	c      *Client
	dealID string
	delay  time.Duration

	// OnSaved and OnError, when set, are called from the save goroutine.
	OnSaved func(dto.DealResponse)
	OnError func(error)

	mu     sync.Mutex
	server string
	draft  string
	timer  *time.Timer
	gen    uint64
	closed bool
	saves  sync.WaitGroup
}

// NewNotesAutosaver starts from serverValue, the notes as last loaded.
func (c *Client) NewNotesAutosaver(dealID, serverValue string) *NotesAutosaver {
	return &NotesAutosaver{
		c:      c,
		dealID: dealID,
		delay:  c.autosaveDelay,
		server: serverValue,
		draft:  serverValue,
	}
}

// Edit records the full current text.
func (a *NotesAutosaver) Edit(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.draft = text
	a.stopLocked()
	if a.draft == a.server {
		return
	}
	gen := a.gen
	a.timer = time.AfterFunc(a.delay, func() { a.fire(gen) })
}

// SetServerValue records a fresh server value, e.g. after a refetch.
func (a *NotesAutosaver) SetServerValue(v string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.server = v
}

// Pending reports whether a save is scheduled.
func (a *NotesAutosaver) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

// Flush saves a pending draft now and waits for in-flight saves.
func (a *NotesAutosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	a.stopLocked()
	dirty := !a.closed && a.draft != a.server
	text := a.draft
	a.mu.Unlock()

	a.saves.Wait()
	if !dirty {
		return nil
	}
	return a.save(ctx, text)
}

// Close cancels a pending save. Saves already sent are not aborted.
func (a *NotesAutosaver) Close() {
	a.mu.Lock()
	a.closed = true
	a.stopLocked()
	a.mu.Unlock()
	a.saves.Wait()
}

// stopLocked cancels the timer and invalidates any callback already racing
// to run; must hold mu.
func (a *NotesAutosaver) stopLocked() {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *NotesAutosaver) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || a.closed {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	text := a.draft
	a.saves.Add(1)
	a.mu.Unlock()

	defer a.saves.Done()
	if err := a.save(context.Background(), text); err != nil {
		log.Warn().Err(err).Str("deal_id", a.dealID).Msg("notes autosave failed")
	}
}

func (a *NotesAutosaver) save(ctx context.Context, text string) error {
	resp, err := a.c.SaveNotes(ctx, a.dealID, text)
	if err != nil {
		if a.OnError != nil {
			a.OnError(err)
		}
		return err
	}
	a.mu.Lock()
	a.server = text
	a.mu.Unlock()
	if a.OnSaved != nil {
		a.OnSaved(resp)
	}
	return nil
}
