package pipeline

import (
	"fmt"
	"strings"
)

// Checklist is an ordered set of completed milestone keys. It is persisted
// as a comma-joined string and always replaced as a whole.
type Checklist struct {
	keys []string
}

// ParseChecklist splits a comma-joined checklist. Blank segments are
// dropped and duplicates collapse onto their first occurrence.
func ParseChecklist(raw string) Checklist {
	var c Checklist
	for _, part := range strings.Split(raw, ",") {
		key := strings.TrimSpace(part)
		if key == "" || c.Has(key) {
			continue
		}
		c.keys = append(c.keys, key)
	}
	return c
}

// NewChecklist builds a checklist from keys, applying ParseChecklist rules.
func NewChecklist(keys ...string) Checklist {
	return ParseChecklist(strings.Join(keys, ","))
}

// String serializes the checklist in insertion order.
func (c Checklist) String() string { return strings.Join(c.keys, ",") }

// Keys returns a copy of the keys in insertion order.
func (c Checklist) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

func (c Checklist) Len() int { return len(c.keys) }

func (c Checklist) Has(key string) bool {
	for _, k := range c.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Toggle returns a new checklist with key added (once) when checked is
// true, or removed when false. The receiver is not modified.
func (c Checklist) Toggle(key string, checked bool) Checklist {
	key = strings.TrimSpace(key)
	out := Checklist{keys: make([]string, 0, len(c.keys)+1)}
	for _, k := range c.keys {
		if k != key {
			out.keys = append(out.keys, k)
		}
	}
	if checked && key != "" {
		if c.Has(key) {
			// keep the original position
			return c.clone()
		}
		out.keys = append(out.keys, key)
	}
	return out
}

// Equal compares membership, ignoring order.
func (c Checklist) Equal(other Checklist) bool {
	if len(c.keys) != len(other.keys) {
		return false
	}
	for _, k := range c.keys {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Validate rejects keys outside the match-stage vocabulary.
func (c Checklist) Validate() error {
	for _, k := range c.keys {
		if !MatchStage(k).Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownMilestone, k)
		}
	}
	return nil
}

func (c Checklist) clone() Checklist {
	return Checklist{keys: c.Keys()}
}
