// Package pipeline holds the deal and match stage vocabularies and the
// milestone checklist carried by every deal/buyer match.
package pipeline

import "fmt"

// DealStage is the position of a deal in the brokerage pipeline.
type DealStage string

const (
	DealOnboarding    DealStage = "onboarding"
	DealValuation     DealStage = "valuation"
	DealBuyerMatching DealStage = "buyer_matching"
	DealDueDiligence  DealStage = "due_diligence"
	DealSold          DealStage = "sold"
)

// DealStages lists every deal stage in pipeline order.
var DealStages = []DealStage{
	DealOnboarding,
	DealValuation,
	DealBuyerMatching,
	DealDueDiligence,
	DealSold,
}

// Valid reports whether s is a known deal stage.
func (s DealStage) Valid() bool { return s.Index() >= 0 }

// Index returns the position of s in DealStages, or -1.
func (s DealStage) Index() int {
	for i, v := range DealStages {
		if v == s {
			return i
		}
	}
	return -1
}

// MatchStage is the single current position of a deal/buyer match.
// Any stage may be set at any time; the order is for display and reporting.
type MatchStage string

const (
	MatchNew           MatchStage = "new"
	MatchNDASent       MatchStage = "nda_sent"
	MatchNDASigned     MatchStage = "nda_signed"
	MatchCIMSent       MatchStage = "cim_sent"
	MatchCIMViewed     MatchStage = "cim_viewed"
	MatchIntroCall     MatchStage = "intro_call"
	MatchDiligence     MatchStage = "diligence"
	MatchIOI           MatchStage = "ioi"
	MatchLOI           MatchStage = "loi"
	MatchUnderContract MatchStage = "under_contract"
	MatchWon           MatchStage = "won"
	MatchLost          MatchStage = "lost"
)

// MatchStages lists every match stage in pipeline order.
var MatchStages = []MatchStage{
	MatchNew,
	MatchNDASent,
	MatchNDASigned,
	MatchCIMSent,
	MatchCIMViewed,
	MatchIntroCall,
	MatchDiligence,
	MatchIOI,
	MatchLOI,
	MatchUnderContract,
	MatchWon,
	MatchLost,
}

// Valid reports whether s is a known match stage.
func (s MatchStage) Valid() bool { return s.Index() >= 0 }

// Index returns the position of s in MatchStages, or -1.
func (s MatchStage) Index() int {
	for i, v := range MatchStages {
		if v == s {
			return i
		}
	}
	return -1
}

// Reached reports whether s is at or past target. Lost is terminal and
// never counts as having reached any later milestone.
func (s MatchStage) Reached(target MatchStage) bool {
	if s == MatchLost && target != MatchLost {
		return false
	}
	i, j := s.Index(), target.Index()
	return i >= 0 && j >= 0 && i >= j
}

// ParseDealStage validates raw as a deal stage.
func ParseDealStage(raw string) (DealStage, error) {
	s := DealStage(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: deal stage %q", ErrInvalidStage, raw)
	}
	return s, nil
}

// ParseMatchStage validates raw as a match stage.
func ParseMatchStage(raw string) (MatchStage, error) {
	s := MatchStage(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: match stage %q", ErrInvalidStage, raw)
	}
	return s, nil
}
