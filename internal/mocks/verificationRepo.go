package mocks

import (
	"context"
	"time"

	"github.com/cradoe/treelance/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Upsert(ctx context.Context, v *models.ContractorVerification) (*models.ContractorVerification, error) {
	args := m.Called(ctx, v)
	if fn, ok := args.Get(0).(func(context.Context, *models.ContractorVerification) *models.ContractorVerification); ok {
		return fn(ctx, v), args.Error(1)
	}
	stored, _ := args.Get(0).(*models.ContractorVerification)
	return stored, args.Error(1)
}

func (m *MockVerificationRepo) GetByContractorID(ctx context.Context, contractorID string) (*models.ContractorVerification, bool, error) {
	args := m.Called(ctx, contractorID)
	stored, _ := args.Get(0).(*models.ContractorVerification)
	return stored, args.Bool(1), args.Error(2)
}

func (m *MockVerificationRepo) ListLapsed(ctx context.Context, asOf time.Time, limit int) ([]models.ContractorVerification, error) {
	args := m.Called(ctx, asOf, limit)
	rows, _ := args.Get(0).([]models.ContractorVerification)
	return rows, args.Error(1)
}

// EchoUpsert makes Upsert return its input with the given previous tier,
// the way the database would.
func (m *MockVerificationRepo) EchoUpsert(previousTier string) *mock.Call {
	return m.On("Upsert", mock.Anything, mock.AnythingOfType("*models.ContractorVerification")).
		Return(func(_ context.Context, v *models.ContractorVerification) *models.ContractorVerification {
			stored := *v
			stored.CreatedAt = time.Now()
			stored.UpdatedAt = stored.CreatedAt
			if previousTier != "" {
				stored.PreviousTier.String = previousTier
				stored.PreviousTier.Valid = true
			}
			return &stored
		}, nil)
}
