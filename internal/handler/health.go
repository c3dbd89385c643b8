package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/response"
)

// Pinger is satisfied by the database and the cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthCheckHandler struct {
	err     *errHandler.ErrorRepository
	version string
	checks  map[string]Pinger
}

func NewHealthCheckHandler(err *errHandler.ErrorRepository, version string, checks map[string]Pinger) *healthCheckHandler {
	return &healthCheckHandler{
		err:     err,
		version: version,
		checks:  checks,
	}
}

func (app *healthCheckHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dependencies := make(map[string]string, len(app.checks))
	healthy := true
	for name, check := range app.checks {
		if err := check.Ping(ctx); err != nil {
			dependencies[name] = "unavailable"
			healthy = false
			continue
		}
		dependencies[name] = "ok"
	}

	data := map[string]any{
		"version":      app.version,
		"dependencies": dependencies,
	}

	if !healthy {
		err := response.JSONErrorResponse(w, data, "Some dependencies are unavailable", http.StatusServiceUnavailable, nil)
		if err != nil {
			app.err.ServerError(w, r, err)
		}
		return
	}

	message := "Up and grateful"
	err := response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		app.err.ServerError(w, r, err)
	}
}
