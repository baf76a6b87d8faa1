// Package client is the Go SDK for the dealflow API. It owns the session,
// a query cache kept consistent through the shared invalidation table, and
// the multi-step workflows (checklist toggles, notes autosave, bulk deletes).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrUnauthorized is returned for any 401. The session has already been
// cleared when a caller sees it.
var ErrUnauthorized = errors.New("unauthorized: please log in again")

// APIError is a non-2xx, non-401 response.
type APIError struct {
	Status int
	// Detail is the human-readable message from the body's "detail" field,
	// or the status text when the body has none.
	Detail string
	Body   []byte
}

func (e *APIError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%d: %s", e.Status, detail)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	return 0
}

// Message is the text to show a user for err.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

type Client struct {
	baseURL        string
	http           *http.Client
	session        *Session
	cache          *QueryCache
	onUnauthorized func()
	autosaveDelay  time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithUnauthorizedHandler runs fn after a 401 cleared the session; a UI
// uses it to return to its login view.
func WithUnauthorizedHandler(fn func()) Option { return func(c *Client) { c.onUnauthorized = fn } }

// WithAutosaveDelay overrides the notes autosave debounce (default 500ms).
func WithAutosaveDelay(d time.Duration) Option { return func(c *Client) { c.autosaveDelay = d } }

func New(baseURL string, session *Session, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: 30 * time.Second},
		session:       session,
		autosaveDelay: defaultAutosaveDelay,
	}
	for _, o := range opts {
		o(c)
	}
	c.cache = newQueryCache(c)
	return c
}

func (c *Client) Session() *Session { return c.session }

func (c *Client) Cache() *QueryCache { return c.cache }

// do sends one request. body is JSON-encoded when non-nil; a 2xx response
// is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession()
		return ErrUnauthorized
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Detail: parseDetail(data, resp.StatusCode), Body: data}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) expireSession() {
	if err := c.session.Clear(); err != nil {
		log.Warn().Err(err).Msg("client: failed to clear session")
	}
	c.cache.Clear()
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// parseDetail extracts {"detail": ...}. A string is used as is; an object
// has its values flattened and joined with ", ".
func parseDetail(body []byte, status int) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &env) == nil && len(env.Detail) > 0 {
		var s string
		if json.Unmarshal(env.Detail, &s) == nil && s != "" {
			return s
		}
		var obj map[string]any
		if json.Unmarshal(env.Detail, &obj) == nil && len(obj) > 0 {
			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			var parts []string
			for _, k := range keys {
				parts = append(parts, flatten(obj[k])...)
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func flatten(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, e := range t {
			out = append(out, flatten(e)...)
		}
		return out
	case string:
		return []string{t}
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(t)}
	}
}
