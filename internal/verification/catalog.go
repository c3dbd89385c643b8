package verification

import "slices"

// Requirements describes what a contractor needs to reach a tier.
// The evaluator decides tiers from these rows, so what clients are shown
// is exactly what is enforced.
type Requirements struct {
	MinJobs            int     `json:"min_jobs"`
	RequiresInsurance  bool    `json:"requires_insurance"`
	RequiresLicense    bool    `json:"requires_license"`
	RequiresBackground bool    `json:"requires_background"`
	MinBond            float64 `json:"min_bond"`
}

var tierRequirements = map[Tier]Requirements{
	TierBronze: {
		MinJobs:            0,
		RequiresInsurance:  false,
		RequiresLicense:    false,
		RequiresBackground: false,
		MinBond:            0,
	},
	TierSilver: {
		MinJobs:            10,
		RequiresInsurance:  true,
		RequiresLicense:    true,
		RequiresBackground: false,
		MinBond:            0,
	},
	TierGold: {
		MinJobs:            50,
		RequiresInsurance:  true,
		RequiresLicense:    true,
		RequiresBackground: true,
		MinBond:            25000,
	},
}

var tierBenefits = map[Tier][]string{
	TierBronze: {
		"Basic platform access",
		"Standard job matching",
		"80% payout rate",
	},
	TierSilver: {
		"Priority job matching",
		"Verified badge display",
		"85% payout rate",
		"Featured in search results",
	},
	TierGold: {
		"Premium job matching",
		"Gold verified badge",
		"90% payout rate",
		"Featured listings",
		"Priority customer support",
		"Emergency storm response priority",
	},
}

var payoutRates = map[Tier]float64{
	TierBronze: 0.80,
	TierSilver: 0.85,
	TierGold:   0.90,
}

// PayoutRate returns the fraction of a job's price the contractor keeps.
// Anything that is not a known tier is paid at the bronze rate, which is
// also what contractors without a stored verification receive.
func PayoutRate(t Tier) float64 {
	rate, ok := payoutRates[t]
	if !ok {
		return payoutRates[TierBronze]
	}
	return rate
}

// AllPayoutRates returns the payout rate of every tier.
func AllPayoutRates() map[Tier]float64 {
	rates := make(map[Tier]float64, len(payoutRates))
	for t, r := range payoutRates {
		rates[t] = r
	}
	return rates
}

// TierBenefits returns a copy of the benefits list for t, nil for unknown tiers.
func TierBenefits(t Tier) []string {
	return slices.Clone(tierBenefits[t])
}

func AllTierBenefits() map[Tier][]string {
	all := make(map[Tier][]string, len(tierBenefits))
	for t, b := range tierBenefits {
		all[t] = slices.Clone(b)
	}
	return all
}

// TierRequirements returns the thresholds for t. The bool is false for unknown tiers.
func TierRequirements(t Tier) (Requirements, bool) {
	req, ok := tierRequirements[t]
	return req, ok
}

func AllTierRequirements() map[Tier]Requirements {
	all := make(map[Tier]Requirements, len(tierRequirements))
	for t, r := range tierRequirements {
		all[t] = r
	}
	return all
}
