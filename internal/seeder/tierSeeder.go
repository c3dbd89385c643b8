package seeders

import (
	"context"
	"fmt"

	"github.com/cradoe/treelance/internal/models"
	"github.com/cradoe/treelance/internal/verification"
)

// seedTiers mirrors the in-code tier catalog into contractor_tiers. The
// catalog is the source of truth, so existing rows are overwritten.
func (seeder *Seeder) seedTiers(ctx context.Context) error {
	for _, tier := range verification.Tiers {
		req, _ := verification.TierRequirements(tier)

		row := &models.ContractorTier{
			Name:               tier.String(),
			Rank:               tier.Rank(),
			PayoutRate:         verification.PayoutRate(tier),
			MinJobs:            req.MinJobs,
			RequiresInsurance:  req.RequiresInsurance,
			RequiresLicense:    req.RequiresLicense,
			RequiresBackground: req.RequiresBackground,
			MinBond:            req.MinBond,
			Benefits:           verification.TierBenefits(tier),
		}

		if err := seeder.Tiers.Upsert(ctx, row); err != nil {
			return fmt.Errorf("seed tier %s: %w", tier, err)
		}
	}

	stored, err := seeder.Tiers.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, row := range stored {
		if _, err := verification.ParseTier(row.Name); err != nil {
			seeder.Logger.Warn("contractor_tiers has a tier the catalog no longer defines", "tier", row.Name)
		}
	}

	seeder.Logger.Info("contractor tiers seeded", "count", len(verification.Tiers))
	return nil
}
