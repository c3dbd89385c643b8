package mocks

import (
	"context"

	"github.com/cradoe/treelance/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockTierRepo struct {
	mock.Mock
}

func (m *MockTierRepo) Upsert(ctx context.Context, tier *models.ContractorTier) error {
	args := m.Called(ctx, tier)
	return args.Error(0)
}

func (m *MockTierRepo) GetAll(ctx context.Context) ([]models.ContractorTier, error) {
	args := m.Called(ctx)
	tiers, _ := args.Get(0).([]models.ContractorTier)
	return tiers, args.Error(1)
}
