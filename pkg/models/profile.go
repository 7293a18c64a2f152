package models

import (
	"time"

	"github.com/google/uuid"
)

// Investor type values for investor profiles
const (
	InvestorTypeAngel       = "angel"
	InvestorTypeVC          = "vc"
	InvestorTypeCorporate   = "corporate"
	InvestorTypeAccelerator = "accelerator"
)

// Startup stage values
const (
	StageIdea    = "idea"
	StagePreSeed = "pre-seed"
	StageSeed    = "seed"
	StageSeriesA = "series-a"
	StageSeriesB = "series-b"
	StageSeriesC = "series-c"
)

// GeoGlobal is the sentinel geography value that matches any startup location.
const GeoGlobal = "Global"

// Requester roles for match operations
const (
	RoleInvestor = "investor"
	RoleStartup  = "startup"
)

// IsValidInvestorType reports whether t is a known investor category.
func IsValidInvestorType(t string) bool {
	switch t {
	case InvestorTypeAngel, InvestorTypeVC, InvestorTypeCorporate, InvestorTypeAccelerator:
		return true
	}
	return false
}

// IsValidStage reports whether s is a known startup stage.
func IsValidStage(s string) bool {
	switch s {
	case StageIdea, StagePreSeed, StageSeed, StageSeriesA, StageSeriesB, StageSeriesC:
		return true
	}
	return false
}

// IsValidRole reports whether r is a known requester role.
func IsValidRole(r string) bool {
	return r == RoleInvestor || r == RoleStartup
}

// InvestorProfile represents an investor's preferences and track record.
// At most one profile exists per user; upserts replace all fields.
// Stored in investor_profiles table; set-valued fields are JSONB columns.
type InvestorProfile struct {
	ID                    uuid.UUID `json:"id"`
	UserID                int64     `json:"user_id"`
	InvestorType          string    `json:"investor_type"`
	InvestmentRangeMin    *int64    `json:"investment_range_min,omitempty"`
	InvestmentRangeMax    *int64    `json:"investment_range_max,omitempty"`
	PreferredStages       []string  `json:"preferred_stages,omitempty"`
	PreferredIndustries   []string  `json:"preferred_industries,omitempty"`
	GeographicFocus       []string  `json:"geographic_focus,omitempty"`
	PreferredTechnologies []string  `json:"preferred_technologies,omitempty"`
	PortfolioSize         int       `json:"portfolio_size"`
	SuccessfulExits       int       `json:"successful_exits"`
	Bio                   string    `json:"bio,omitempty"`
	LinkedinURL           string    `json:"linkedin_url,omitempty"`
	WebsiteURL            string    `json:"website_url,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// StartupProfile represents a startup seeking investment.
// Stored in startup_profiles table.
type StartupProfile struct {
	ID                   uuid.UUID `json:"id"`
	UserID               int64     `json:"user_id"`
	StartupName          string    `json:"startup_name"`
	Industry             string    `json:"industry"`
	Stage                string    `json:"stage"`
	FundingGoal          *int64    `json:"funding_goal,omitempty"`
	CurrentRevenue       int64     `json:"current_revenue"`
	TeamSize             int       `json:"team_size"`
	FoundedYear          *int      `json:"founded_year,omitempty"`
	Location             string    `json:"location,omitempty"`
	Technologies         []string  `json:"technologies,omitempty"`
	ProblemStatement     string    `json:"problem_statement,omitempty"`
	SolutionDescription  string    `json:"solution_description,omitempty"`
	TargetMarket         string    `json:"target_market,omitempty"`
	CompetitiveAdvantage string    `json:"competitive_advantage,omitempty"`
	PitchDeckURL         string    `json:"pitch_deck_url,omitempty"`
	WebsiteURL           string    `json:"website_url,omitempty"`
	DemoURL              string    `json:"demo_url,omitempty"`
	LogoURL              string    `json:"logo_url,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
