package services

import (
	"github.com/venturelink/match-engine/pkg/models"
)

// Factor weights for the compatibility score. They sum to 100, so with every
// factor in {0,1} the total lands in [0,100].
const (
	WeightIndustry   = 30
	WeightStage      = 25
	WeightInvestment = 20
	WeightGeography  = 15
	WeightTechnology = 10
)

// ScoreCompatibility computes the weighted compatibility score for one
// investor/startup pair. Pure and deterministic: no I/O, no side effects.
// Missing or empty fields on either side score 0 for that factor; an empty
// preference set is a no-match, not a wildcard. The only wildcard is the
// literal "Global" entry in the investor's geographic focus.
func ScoreCompatibility(investor *models.InvestorProfile, startup *models.StartupProfile) models.CompatibilityScore {
	if investor == nil || startup == nil {
		return models.CompatibilityScore{}
	}

	var b models.ScoreBreakdown

	// Industry: exact, case-sensitive membership. No normalization is
	// performed; values are compared as stored.
	if startup.Industry != "" && contains(investor.PreferredIndustries, startup.Industry) {
		b.Industry = 1.0
	}

	// Stage
	if startup.Stage != "" && contains(investor.PreferredStages, startup.Stage) {
		b.Stage = 1.0
	}

	// Investment range: binary containment check, no partial credit for
	// near-misses. A missing bound or funding goal is a no-match.
	if startup.FundingGoal != nil && investor.InvestmentRangeMin != nil && investor.InvestmentRangeMax != nil {
		goal := *startup.FundingGoal
		if goal >= *investor.InvestmentRangeMin && goal <= *investor.InvestmentRangeMax {
			b.Investment = 1.0
		}
	}

	// Geography: location membership, or the "Global" sentinel.
	if contains(investor.GeographicFocus, models.GeoGlobal) ||
		(startup.Location != "" && contains(investor.GeographicFocus, startup.Location)) {
		b.Geography = 1.0
	}

	// Technology: any overlap counts fully, regardless of overlap size.
	if overlaps(startup.Technologies, investor.PreferredTechnologies) {
		b.Technology = 1.0
	}

	total := WeightIndustry*b.Industry +
		WeightStage*b.Stage +
		WeightInvestment*b.Investment +
		WeightGeography*b.Geography +
		WeightTechnology*b.Technology

	return models.CompatibilityScore{Total: total, Breakdown: b}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, v := range a {
		if contains(b, v) {
			return true
		}
	}
	return false
}
