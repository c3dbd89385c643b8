package mocks

import (
	"context"

	"github.com/cradoe/treelance/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Insert(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error) {
	args := m.Called(ctx, log)
	stored, _ := args.Get(0).(*models.ActivityLog)
	return stored, args.Error(1)
}
