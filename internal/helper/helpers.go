package helper

import (
	"fmt"
	"net/http"
	"sync"
)

// ErrorReporter is satisfied by errHandler.ErrorRepository.
type ErrorReporter interface {
	ReportServerError(r *http.Request, err error)
}

type HelperRepository struct {
	baseUrl  string
	WG       *sync.WaitGroup
	reporter ErrorReporter
}

func New(baseUrl string, wg *sync.WaitGroup, reporter ErrorReporter) *HelperRepository {
	if wg == nil {
		wg = &sync.WaitGroup{}
	}

	return &HelperRepository{
		baseUrl:  baseUrl,
		WG:       wg,
		reporter: reporter,
	}
}

func (h *HelperRepository) NewEmailData() map[string]any {
	data := map[string]any{
		"BaseURL": h.baseUrl,
	}

	return data
}

// BackgroundTask runs fn on its own goroutine. Errors and panics are
// reported instead of crashing the server; WG lets shutdown wait for
// in-flight tasks.
func (h *HelperRepository) BackgroundTask(r *http.Request, fn func() error) {
	h.WG.Add(1)

	go func() {
		defer h.WG.Done()

		defer func() {
			if rec := recover(); rec != nil {
				h.report(r, fmt.Errorf("%s", rec))
			}
		}()

		if err := fn(); err != nil {
			h.report(r, err)
		}
	}()
}

func (h *HelperRepository) report(r *http.Request, err error) {
	if h.reporter != nil {
		h.reporter.ReportServerError(r, err)
	}
}
