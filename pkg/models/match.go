package models

import (
	"time"

	"github.com/google/uuid"
)

// Interest values for each side of a match.
// Absence of a match row means neither side has expressed anything yet;
// a row is created lazily on the first interest action.
const (
	InterestPending    = "pending"
	InterestInterested = "interested"
	InterestPassed     = "passed"
)

// IsValidInterestAction reports whether a is an action a user may express.
// "pending" is a stored default, never an accepted action.
func IsValidInterestAction(a string) bool {
	return a == InterestInterested || a == InterestPassed
}

// Match is the ledger row for one (investor, startup) pair. The pair key is
// always oriented investor-first regardless of which side acted. IsMutual is
// derived from the two interest fields and is sticky: once true it stays
// true even if a side later changes its interest.
type Match struct {
	ID                 uuid.UUID `json:"id"`
	InvestorID         uuid.UUID `json:"investor_id"`
	StartupID          uuid.UUID `json:"startup_id"`
	CompatibilityScore *float64  `json:"compatibility_score,omitempty"`
	InvestorInterest   string    `json:"investor_interest"`
	StartupInterest    string    `json:"startup_interest"`
	IsMutual           bool      `json:"is_mutual"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ScoreBreakdown holds the five normalized factor scores, each in [0,1].
type ScoreBreakdown struct {
	Industry   float64 `json:"industry"`
	Stage      float64 `json:"stage"`
	Investment float64 `json:"investment"`
	Geography  float64 `json:"geography"`
	Technology float64 `json:"technology"`
}

// CompatibilityScore is the result of scoring one investor/startup pair.
// Total is the weighted sum of the breakdown factors, in [0,100].
type CompatibilityScore struct {
	Total     float64        `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// Candidate is one scored entry in a find-matches result. Exactly one of
// Investor or Startup is set, depending on the requester's role.
type Candidate struct {
	Investor       *InvestorProfile `json:"investor,omitempty"`
	Startup        *StartupProfile  `json:"startup,omitempty"`
	MatchScore     float64          `json:"match_score"`
	ScoreBreakdown ScoreBreakdown   `json:"score_breakdown"`
}

// MutualMatch is one entry in a mutual-matches listing: the opposite side's
// profile plus when the ledger row was created.
type MutualMatch struct {
	Investor  *InvestorProfile `json:"investor,omitempty"`
	Startup   *StartupProfile  `json:"startup,omitempty"`
	MatchedAt time.Time        `json:"matched_at"`
}
