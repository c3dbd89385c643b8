package context

import (
	"context"
	"net/http"
)

type contextKey string

const (
	authenticatedCallerContextKey = contextKey("authenticatedCaller")
)

// Caller is the identity carried by a verified bearer token.
type Caller struct {
	Subject string
}

func ContextSetAuthenticatedCaller(r *http.Request, caller *Caller) *http.Request {
	ctx := context.WithValue(r.Context(), authenticatedCallerContextKey, caller)
	return r.WithContext(ctx)
}

func ContextGetAuthenticatedCaller(r *http.Request) *Caller {
	caller, ok := r.Context().Value(authenticatedCallerContextKey).(*Caller)
	if !ok {
		return nil
	}

	return caller
}
