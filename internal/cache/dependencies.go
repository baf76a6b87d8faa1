package cache

import "strings"

// Mutation names a state-changing operation of the API.
type Mutation string

const (
	CreateDeal      Mutation = "create_deal"
	UpdateDeal      Mutation = "update_deal"
	DeleteDeal      Mutation = "delete_deal"
	SaveNotes       Mutation = "save_notes"
	CreateMatch     Mutation = "create_match"
	UpdateMatch     Mutation = "update_match"
	UpdateChecklist Mutation = "update_checklist"
	DeleteMatch     Mutation = "delete_match"
	CreateParty     Mutation = "create_party"
	DeleteParty     Mutation = "delete_party"
	CreateActivity  Mutation = "create_activity"
	UpdateActivity  Mutation = "update_activity"
	CreateContact   Mutation = "create_contact"
)

// Mutations lists every mutation; each one must have a dependency entry.
var Mutations = []Mutation{
	CreateDeal, UpdateDeal, DeleteDeal, SaveNotes,
	CreateMatch, UpdateMatch, UpdateChecklist, DeleteMatch,
	CreateParty, DeleteParty,
	CreateActivity, UpdateActivity, CreateContact,
}

// Scope carries the identifiers a mutation touched. Fields a mutation does
// not need are ignored.
type Scope struct {
	DealID     string
	MatchID    string
	EntityID   string
	EntityType string
	// DealIDs lists every deal whose buyer list a fan-out mutation touched
	// (party delete, party contact create).
	DealIDs []string
	// MatchIDs lists the matches removed by a cascading delete.
	MatchIDs []string
}

func buyerLists(ids []string) []Key {
	keys := make([]Key, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, DealBuyersKey(id))
	}
	return keys
}

func matches(ids []string) []Key {
	keys := make([]Key, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, MatchKey(id))
	}
	return keys
}

var dependencies = map[Mutation]func(Scope) []Key{
	CreateDeal: func(Scope) []Key { return []Key{DealsKey()} },
	UpdateDeal: func(s Scope) []Key { return []Key{DealKey(s.DealID), DealsKey()} },
	// a deal delete cascades to its matches, contact links, activities and documents
	DeleteDeal: func(s Scope) []Key {
		keys := []Key{
			DealKey(s.DealID), DealsKey(), DealBuyersKey(s.DealID),
			ActivitiesKey(s.DealID), DocumentsKey(s.DealID), ContactsKey(s.DealID, "deal"),
		}
		return append(keys, matches(s.MatchIDs)...)
	},
	// notes saves also log a system activity on the deal
	SaveNotes: func(s Scope) []Key { return []Key{DealKey(s.DealID), ActivitiesKey(s.DealID)} },

	CreateMatch:     func(s Scope) []Key { return []Key{DealBuyersKey(s.DealID)} },
	UpdateMatch:     func(s Scope) []Key { return []Key{MatchKey(s.MatchID), DealBuyersKey(s.DealID)} },
	UpdateChecklist: func(s Scope) []Key { return []Key{MatchKey(s.MatchID), DealBuyersKey(s.DealID)} },
	DeleteMatch:     func(s Scope) []Key { return []Key{MatchKey(s.MatchID), DealBuyersKey(s.DealID)} },

	CreateParty: func(Scope) []Key { return []Key{BuyingPartiesKey()} },
	// a party delete cascades to its matches and contact links
	DeleteParty: func(s Scope) []Key {
		keys := []Key{BuyingPartiesKey(), ContactsKey(s.EntityID, "party")}
		keys = append(keys, buyerLists(s.DealIDs)...)
		return append(keys, matches(s.MatchIDs)...)
	},

	CreateActivity: func(s Scope) []Key { return []Key{ActivitiesKey(s.EntityID)} },
	UpdateActivity: func(s Scope) []Key { return []Key{ActivitiesKey(s.EntityID)} },
	// buyer list rows carry the party's first contact
	CreateContact: func(s Scope) []Key {
		return append([]Key{ContactsKey(s.EntityID, s.EntityType)}, buyerLists(s.DealIDs)...)
	},
}

// Dependents returns the keys m makes stale. Unknown mutations panic: a
// missing entry is a programming error, not a runtime condition.
func Dependents(m Mutation, s Scope) []Key {
	fn, ok := dependencies[m]
	if !ok {
		panic("cache: no dependency entry for mutation " + string(m))
	}
	keys := fn(s)
	out := keys[:0]
	seen := make(map[Key]bool, len(keys))
	for _, k := range keys {
		if seen[k] || hasEmptySegment(k) {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// hasEmptySegment drops keys built from a missing identifier.
func hasEmptySegment(k Key) bool {
	s := string(k)
	return strings.HasSuffix(k.Path(), "/") ||
		strings.Contains(s, "//") ||
		strings.HasSuffix(s, "=") ||
		strings.Contains(s, "=&")
}
