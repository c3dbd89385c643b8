package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, src io.Reader, folder, publicID string) (string, error) {
	args := m.Called(ctx, src, folder, publicID)
	return args.String(0), args.Error(1)
}
