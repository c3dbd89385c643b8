package mocks

import (
	"context"

	"github.com/cradoe/treelance/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) Insert(ctx context.Context, doc *models.CredentialDocument) (*models.CredentialDocument, error) {
	args := m.Called(ctx, doc)
	stored, _ := args.Get(0).(*models.CredentialDocument)
	return stored, args.Error(1)
}

func (m *MockDocumentRepo) GetAllByContractorID(ctx context.Context, contractorID string) ([]models.CredentialDocument, error) {
	args := m.Called(ctx, contractorID)
	docs, _ := args.Get(0).([]models.CredentialDocument)
	return docs, args.Error(1)
}
