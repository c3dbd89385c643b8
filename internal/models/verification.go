package models

import (
	"database/sql"
	"time"

	"github.com/cradoe/treelance/internal/verification"
	"github.com/lib/pq"
)

// ContractorVerification is the latest evaluation stored for a contractor,
// together with the raw claim it was computed from so it can be re-run.
type ContractorVerification struct {
	ContractorID        string          `db:"contractor_id"`
	Tier                string          `db:"tier"`
	Verified            bool            `db:"verified"`
	Score               int             `db:"score"`
	MetRequirements     pq.StringArray  `db:"met_requirements"`
	MissingRequirements pq.StringArray  `db:"missing_requirements"`
	HasInsurance        bool            `db:"has_insurance"`
	InsuranceExpiry     sql.NullTime    `db:"insurance_expiry"`
	HasLicense          bool            `db:"has_license"`
	LicenseNumber       sql.NullString  `db:"license_number"`
	LicenseExpiry       sql.NullTime    `db:"license_expiry"`
	BackgroundCheck     bool            `db:"background_check"`
	BondAmount          sql.NullFloat64 `db:"bond_amount"`
	CompletedJobs       int             `db:"completed_jobs"`
	VerifiedAt          sql.NullTime    `db:"verified_at"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`

	// PreviousTier is only populated by an upsert: the tier stored before it, if any.
	PreviousTier sql.NullString `db:"previous_tier"`
}

// NewContractorVerification combines a claim and its evaluation into a row
// ready to be stored. verified_at is stamped with evaluatedAt only when the
// result is verified.
func NewContractorVerification(contractorID string, claim verification.Claim, result verification.Result, evaluatedAt time.Time) *ContractorVerification {
	v := &ContractorVerification{
		ContractorID:        contractorID,
		Tier:                result.Tier.String(),
		Verified:            result.Verified,
		Score:               result.Score,
		MetRequirements:     pq.StringArray(result.MetRequirements),
		MissingRequirements: pq.StringArray(result.MissingRequirements),
		HasInsurance:        claim.HasInsurance,
		HasLicense:          claim.HasLicense,
		BackgroundCheck:     claim.BackgroundCheckPassed,
		CompletedJobs:       claim.CompletedJobs,
	}

	if claim.InsuranceExpiry != nil {
		v.InsuranceExpiry = sql.NullTime{Time: *claim.InsuranceExpiry, Valid: true}
	}
	if claim.LicenseNumber != "" {
		v.LicenseNumber = sql.NullString{String: claim.LicenseNumber, Valid: true}
	}
	if claim.LicenseExpiry != nil {
		v.LicenseExpiry = sql.NullTime{Time: *claim.LicenseExpiry, Valid: true}
	}
	if claim.BondAmount != nil {
		v.BondAmount = sql.NullFloat64{Float64: *claim.BondAmount, Valid: true}
	}
	if result.Verified {
		v.VerifiedAt = sql.NullTime{Time: evaluatedAt, Valid: true}
	}

	return v
}

// Claim rebuilds the claim the stored result was evaluated from.
func (v *ContractorVerification) Claim() verification.Claim {
	c := verification.Claim{
		HasInsurance:          v.HasInsurance,
		HasLicense:            v.HasLicense,
		LicenseNumber:         v.LicenseNumber.String,
		BackgroundCheckPassed: v.BackgroundCheck,
		CompletedJobs:         v.CompletedJobs,
	}

	if v.InsuranceExpiry.Valid {
		t := v.InsuranceExpiry.Time
		c.InsuranceExpiry = &t
	}
	if v.LicenseExpiry.Valid {
		t := v.LicenseExpiry.Time
		c.LicenseExpiry = &t
	}
	if v.BondAmount.Valid {
		b := v.BondAmount.Float64
		c.BondAmount = &b
	}

	return c
}

// TierOrDefault parses the stored tier; rows written before a tier was
// renamed or removed are treated as bronze.
func (v *ContractorVerification) TierOrDefault() verification.Tier {
	tier, err := verification.ParseTier(v.Tier)
	if err != nil {
		return verification.TierBronze
	}
	return tier
}

// TierChanged reports whether the upsert that produced v moved the contractor to another tier.
// A first verification counts as a change from bronze.
func (v *ContractorVerification) TierChanged() bool {
	previous := string(verification.TierBronze)
	if v.PreviousTier.Valid {
		previous = v.PreviousTier.String
	}
	return previous != v.Tier
}
