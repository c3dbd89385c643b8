package mocks

import (
	"net/http"
	"sync"
)

// MockErrorHandler collects reported errors instead of logging or emailing them.
type MockErrorHandler struct {
	mu     sync.Mutex
	Errors []error
}

func (m *MockErrorHandler) ReportServerError(r *http.Request, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Errors = append(m.Errors, err)
}

func (m *MockErrorHandler) Reported() []error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]error(nil), m.Errors...)
}
