package pipeline

import "strings"

// PinnedSlot names a document a deal page keeps one click away.
type PinnedSlot string

const (
	SlotValuationWorkbook PinnedSlot = "valuation_excel"
	SlotValuationDeck     PinnedSlot = "valuation_ppt"
	SlotCIM               PinnedSlot = "cim_ppt"
	SlotNDA               PinnedSlot = "nda_pdf"
)

// PinnedSlots lists slots in display order.
var PinnedSlots = []PinnedSlot{SlotValuationWorkbook, SlotValuationDeck, SlotCIM, SlotNDA}

// Valid reports whether s is a known slot; used to validate document kinds.
func (s PinnedSlot) Valid() bool {
	for _, v := range PinnedSlots {
		if v == s {
			return true
		}
	}
	return false
}

// Match sources reported alongside a pinned document.
const (
	SourceKind = "kind"
	SourceName = "name"
)

// DocumentRef is the slice of a document the classifier looks at.
type DocumentRef struct {
	ID   string
	Name string
	Kind string
}

// Pinned is one classified document.
type Pinned struct {
	DocumentID string
	Source     string
}

// nameRules are best-effort: each rule lists groups of substrings, every
// group must match (any alternative inside a group) on the lowercased name.
var nameRules = map[PinnedSlot][][]string{
	SlotValuationWorkbook: {{"valuation"}, {".xlsx"}},
	SlotValuationDeck:     {{"valuation"}, {".ppt"}},
	SlotCIM:               {{"cim", "confidential information memorandum"}},
	SlotNDA:               {{"nda", "non-disclosure"}},
}

// ClassifyPinned picks at most one document per slot. An explicit Kind
// always wins over the file-name heuristic; within each pass the first
// document in input order is taken.
func ClassifyPinned(docs []DocumentRef) map[PinnedSlot]Pinned {
	out := make(map[PinnedSlot]Pinned, len(PinnedSlots))
	for _, d := range docs {
		slot := PinnedSlot(d.Kind)
		if !slot.Valid() {
			continue
		}
		if _, taken := out[slot]; !taken {
			out[slot] = Pinned{DocumentID: d.ID, Source: SourceKind}
		}
	}
	for _, slot := range PinnedSlots {
		if _, taken := out[slot]; taken {
			continue
		}
		for _, d := range docs {
			if d.Kind != "" {
				continue
			}
			if matchesName(strings.ToLower(d.Name), nameRules[slot]) {
				out[slot] = Pinned{DocumentID: d.ID, Source: SourceName}
				break
			}
		}
	}
	return out
}

func matchesName(name string, groups [][]string) bool {
	for _, alts := range groups {
		hit := false
		for _, a := range alts {
			if strings.Contains(name, a) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return len(groups) > 0
}
