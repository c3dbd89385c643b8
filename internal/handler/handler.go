package handler

import (
	"net/http"
	"strings"

	"github.com/cradoe/treelance/internal/context"
	"github.com/cradoe/treelance/internal/repository"
	"github.com/cradoe/treelance/internal/validator"
)

// contractorIDFromPath reads and validates the {id} path segment.
func contractorIDFromPath(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	return id, validator.Matches(id, validator.RgxContractorID)
}

// actor names who performed a request for the activity log.
func actor(r *http.Request) string {
	if caller := context.ContextGetAuthenticatedCaller(r); caller != nil {
		return caller.Subject
	}
	return repository.ActivityLogSystemUser
}
