package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cradoe/treelance/internal/models"
	"github.com/jmoiron/sqlx"
)

type VerificationRepository interface {
	Upsert(ctx context.Context, v *models.ContractorVerification) (*models.ContractorVerification, error)
	GetByContractorID(ctx context.Context, contractorID string) (*models.ContractorVerification, bool, error)
	ListLapsed(ctx context.Context, asOf time.Time, limit int) ([]models.ContractorVerification, error)
}

type VerificationRepositoryImpl struct {
	db *sqlx.DB
}

func NewVerificationRepository(db *sqlx.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

const verificationColumns = `
	contractor_id, tier, verified, score, met_requirements, missing_requirements,
	has_insurance, insurance_expiry, has_license, license_number, license_expiry,
	background_check, bond_amount, completed_jobs, verified_at, created_at, updated_at`

// Upsert stores the latest evaluation for a contractor, replacing any
// earlier one. The returned row carries the tier that was stored before
// the write in PreviousTier. Writers for the same contractor are serialized
// by a transaction-scoped advisory lock, so each one sees the tier its
// predecessor committed, including for a contractor's first row.
func (repo *VerificationRepositoryImpl) Upsert(ctx context.Context, v *models.ContractorVerification) (*models.ContractorVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, v.ContractorID)
	if err != nil {
		return nil, err
	}

	var previous sql.NullString
	err = tx.GetContext(ctx, &previous, `
		SELECT tier FROM contractor_verifications WHERE contractor_id = $1 FOR UPDATE`, v.ContractorID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	query := `
		INSERT INTO contractor_verifications (
			contractor_id, tier, verified, score, met_requirements, missing_requirements,
			has_insurance, insurance_expiry, has_license, license_number, license_expiry,
			background_check, bond_amount, completed_jobs, verified_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (contractor_id) DO UPDATE SET
			tier = EXCLUDED.tier,
			verified = EXCLUDED.verified,
			score = EXCLUDED.score,
			met_requirements = EXCLUDED.met_requirements,
			missing_requirements = EXCLUDED.missing_requirements,
			has_insurance = EXCLUDED.has_insurance,
			insurance_expiry = EXCLUDED.insurance_expiry,
			has_license = EXCLUDED.has_license,
			license_number = EXCLUDED.license_number,
			license_expiry = EXCLUDED.license_expiry,
			background_check = EXCLUDED.background_check,
			bond_amount = EXCLUDED.bond_amount,
			completed_jobs = EXCLUDED.completed_jobs,
			verified_at = EXCLUDED.verified_at,
			updated_at = NOW()
		RETURNING ` + verificationColumns

	var stored models.ContractorVerification
	err = tx.GetContext(ctx, &stored, query,
		v.ContractorID,
		v.Tier,
		v.Verified,
		v.Score,
		v.MetRequirements,
		v.MissingRequirements,
		v.HasInsurance,
		v.InsuranceExpiry,
		v.HasLicense,
		v.LicenseNumber,
		v.LicenseExpiry,
		v.BackgroundCheck,
		v.BondAmount,
		v.CompletedJobs,
		v.VerifiedAt,
	)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	stored.PreviousTier = previous
	return &stored, nil
}

func (repo *VerificationRepositoryImpl) GetByContractorID(ctx context.Context, contractorID string) (*models.ContractorVerification, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + verificationColumns + ` FROM contractor_verifications WHERE contractor_id = $1`

	var v models.ContractorVerification
	err := repo.db.GetContext(ctx, &v, query, contractorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &v, true, nil
}

// ListLapsed returns verifications whose insurance or license expired
// after they were last evaluated and on or before asOf. Their stored score
// is stale until they are evaluated again, which moves updated_at past the
// expiry and drops them from this list.
func (repo *VerificationRepositoryImpl) ListLapsed(ctx context.Context, asOf time.Time, limit int) ([]models.ContractorVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		SELECT ` + verificationColumns + `
		FROM contractor_verifications
		WHERE
			(has_insurance AND insurance_expiry > updated_at AND insurance_expiry <= $1)
			OR (has_license AND license_expiry > updated_at AND license_expiry <= $1)
		ORDER BY updated_at ASC
		LIMIT $2`

	var verifications []models.ContractorVerification
	err := repo.db.SelectContext(ctx, &verifications, query, asOf, limit)
	if err != nil {
		return nil, err
	}

	return verifications, nil
}
