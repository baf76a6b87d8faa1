// Package cache defines the read keys shared by the API server and the
// client SDK, the table of reads each mutation makes stale, and the stores
// both sides cache responses in.
package cache

import (
	"net/url"
	"strings"
)

// Key identifies one read: a resource path plus, for parameterized reads,
// its query parameters in canonical (sorted) order.
type Key string

// NewKey builds a key from a path and optional parameters.
func NewKey(path string, params url.Values) Key {
	if len(params) == 0 {
		return Key(path)
	}
	// Encode sorts by parameter name
	return Key(path + "?" + params.Encode())
}

func (k Key) String() string { return string(k) }

// Path is the resource path without parameters.
func (k Key) Path() string {
	p, _, _ := strings.Cut(string(k), "?")
	return p
}

func DealsKey() Key { return "/api/deals" }

func DealKey(dealID string) Key { return Key("/api/deals/" + dealID) }

func DealBuyersKey(dealID string) Key { return Key("/api/deals/" + dealID + "/buyers") }

func MatchKey(matchID string) Key { return Key("/api/matches/" + matchID) }

func BuyingPartiesKey() Key { return "/api/buying-parties" }

func ActivitiesKey(entityID string) Key {
	return NewKey("/api/activities", url.Values{"entityId": {entityID}})
}

func DocumentsKey(entityID string) Key {
	return NewKey("/api/documents", url.Values{"entityId": {entityID}})
}

func ContactsKey(entityID, entityType string) Key {
	return NewKey("/api/contacts", url.Values{"entityId": {entityID}, "entityType": {entityType}})
}
