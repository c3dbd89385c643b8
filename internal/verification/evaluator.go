// Package verification scores contractor credential claims and maps the
// resulting trust tier to benefits and payout rates.
//
// Everything in here is pure: no I/O, no shared mutable state. Callers
// persist results and decide when to re-evaluate.
package verification

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	insurancePoints  = 25
	licensePoints    = 25
	backgroundPoints = 20
	bondPoints       = 15

	// job history is partial credit, see scoreJobs
	jobsGoldPoints   = 15
	jobsSilverPoints = 10
	jobsBasePoints   = 5

	MaxScore = insurancePoints + licensePoints + backgroundPoints + bondPoints + jobsGoldPoints
)

const (
	RequirementInsuranceMet  = "Valid insurance"
	RequirementInsurance     = "Valid insurance required"
	RequirementLicenseMet    = "Valid contractor license"
	RequirementLicense       = "Valid contractor license required"
	RequirementBackgroundMet = "Background check passed"
	RequirementBackground    = "Background check required"
)

// Claim is what a contractor says about their credentials. None of it is
// trusted: absent optional fields simply fail the matching requirement.
type Claim struct {
	HasInsurance          bool
	InsuranceExpiry       *time.Time
	HasLicense            bool
	LicenseNumber         string
	LicenseExpiry         *time.Time
	BackgroundCheckPassed bool
	BondAmount            *float64
	CompletedJobs         int
}

// Result is computed fresh on every evaluation and never mutated afterwards.
type Result struct {
	Tier                Tier
	Verified            bool
	Score               int
	MetRequirements     []string
	MissingRequirements []string
	Benefits            []string
}

var printer = message.NewPrinter(language.English)

// Evaluate scores the claim against the current time.
func Evaluate(c Claim) Result {
	return EvaluateAt(c, time.Now())
}

// EvaluateAt scores the claim as of now. Scoring and tier assignment are
// two separate decisions: scoring requires unexpired credentials, tier
// assignment only looks at the raw flags. A gold contractor whose
// insurance lapsed therefore keeps gold but scores below MaxScore until
// the caller re-runs verification with a renewed expiry.
func EvaluateAt(c Claim, now time.Time) Result {
	res := Result{
		MetRequirements:     []string{},
		MissingRequirements: []string{},
	}

	met := func(points int, msg string) {
		res.Score += points
		res.MetRequirements = append(res.MetRequirements, msg)
	}
	missing := func(msg string) {
		res.MissingRequirements = append(res.MissingRequirements, msg)
	}

	if c.HasInsurance && validUntil(c.InsuranceExpiry, now) {
		met(insurancePoints, RequirementInsuranceMet)
	} else {
		missing(RequirementInsurance)
	}

	if c.HasLicense && c.LicenseNumber != "" && validUntil(c.LicenseExpiry, now) {
		met(licensePoints, RequirementLicenseMet)
	} else {
		missing(RequirementLicense)
	}

	if c.BackgroundCheckPassed {
		met(backgroundPoints, RequirementBackgroundMet)
	} else {
		missing(RequirementBackground)
	}

	minBond := tierRequirements[TierGold].MinBond
	if c.BondAmount != nil && *c.BondAmount >= minBond {
		met(bondPoints, "Bonded for $"+formatAmount(*c.BondAmount))
	} else {
		missing(fmt.Sprintf("$%s bond required for Gold tier", formatAmount(minBond)))
	}

	res.scoreJobs(c.CompletedJobs)

	res.Tier = assignTier(c)
	res.Verified = res.Tier != TierBronze || (c.HasInsurance && c.HasLicense)
	res.Benefits = TierBenefits(res.Tier)

	return res
}

// scoreJobs always awards some points. Below the silver threshold the
// contractor still gets jobsBasePoints while the requirement is listed as
// missing: job count is a progress signal, not a gate.
func (res *Result) scoreJobs(completed int) {
	silverJobs := tierRequirements[TierSilver].MinJobs
	goldJobs := tierRequirements[TierGold].MinJobs

	switch {
	case completed >= goldJobs:
		res.Score += jobsGoldPoints
		res.MetRequirements = append(res.MetRequirements, fmt.Sprintf("%d completed jobs", completed))
	case completed >= silverJobs:
		res.Score += jobsSilverPoints
		res.MetRequirements = append(res.MetRequirements, fmt.Sprintf("%d completed jobs", completed))
	default:
		res.Score += jobsBasePoints
		res.MissingRequirements = append(res.MissingRequirements, fmt.Sprintf("Need %d more jobs for Silver tier", silverJobs-completed))
	}
}

// assignTier returns the highest tier whose requirements the raw claim
// satisfies. Expiry dates are not consulted here.
func assignTier(c Claim) Tier {
	for _, t := range []Tier{TierGold, TierSilver} {
		if qualifies(c, tierRequirements[t]) {
			return t
		}
	}
	return TierBronze
}

func qualifies(c Claim, req Requirements) bool {
	if c.CompletedJobs < req.MinJobs {
		return false
	}
	if req.RequiresInsurance && !c.HasInsurance {
		return false
	}
	if req.RequiresLicense && !c.HasLicense {
		return false
	}
	if req.RequiresBackground && !c.BackgroundCheckPassed {
		return false
	}

	if req.MinBond > 0 {
		var bond float64
		if c.BondAmount != nil {
			bond = *c.BondAmount
		}
		if bond < req.MinBond {
			return false
		}
	}

	return true
}

// validUntil reports whether expiry is present and strictly after now.
func validUntil(expiry *time.Time, now time.Time) bool {
	return expiry != nil && expiry.After(now)
}

// formatAmount groups thousands, e.g. 25000 -> "25,000", 30000.5 -> "30,000.5".
func formatAmount(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}
