package mocks

import "github.com/stretchr/testify/mock"

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(topic, key string, payload any) error {
	args := m.Called(topic, key, payload)
	return args.Error(0)
}
