package seeders

import (
	"context"
	"log/slog"
	"time"

	"github.com/cradoe/treelance/internal/repository"
)

const defaultTimeout = 10 * time.Second

type Seeder struct {
	Tiers  repository.TierRepository
	Logger *slog.Logger
}

func New(tiers repository.TierRepository, logger *slog.Logger) *Seeder {
	return &Seeder{
		Tiers:  tiers,
		Logger: logger,
	}
}

func (seeder *Seeder) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return seeder.seedTiers(ctx)
}
