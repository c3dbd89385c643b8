package repository

import (
	"context"

	"github.com/cradoe/treelance/internal/models"
	"github.com/jmoiron/sqlx"
)

type TierRepository interface {
	Upsert(ctx context.Context, tier *models.ContractorTier) error
	GetAll(ctx context.Context) ([]models.ContractorTier, error)
}

type TierRepositoryImpl struct {
	db *sqlx.DB
}

func NewTierRepository(db *sqlx.DB) TierRepository {
	return &TierRepositoryImpl{db: db}
}

func (repo *TierRepositoryImpl) Upsert(ctx context.Context, tier *models.ContractorTier) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO contractor_tiers (
			name, rank, payout_rate, min_jobs, requires_insurance,
			requires_license, requires_background, min_bond, benefits
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO UPDATE SET
			rank = EXCLUDED.rank,
			payout_rate = EXCLUDED.payout_rate,
			min_jobs = EXCLUDED.min_jobs,
			requires_insurance = EXCLUDED.requires_insurance,
			requires_license = EXCLUDED.requires_license,
			requires_background = EXCLUDED.requires_background,
			min_bond = EXCLUDED.min_bond,
			benefits = EXCLUDED.benefits,
			updated_at = NOW()`

	_, err := repo.db.ExecContext(ctx, query,
		tier.Name,
		tier.Rank,
		tier.PayoutRate,
		tier.MinJobs,
		tier.RequiresInsurance,
		tier.RequiresLicense,
		tier.RequiresBackground,
		tier.MinBond,
		tier.Benefits,
	)
	return err
}

func (repo *TierRepositoryImpl) GetAll(ctx context.Context) ([]models.ContractorTier, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		SELECT
			name, rank, payout_rate, min_jobs, requires_insurance,
			requires_license, requires_background, min_bond, benefits, updated_at
		FROM contractor_tiers
		ORDER BY rank ASC`

	var tiers []models.ContractorTier
	if err := repo.db.SelectContext(ctx, &tiers, query); err != nil {
		return nil, err
	}

	return tiers, nil
}
