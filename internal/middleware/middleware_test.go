package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cradoe/treelance/internal/context"
	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/mocks"
	"github.com/pascaldekloe/jwt"
	"github.com/stretchr/testify/require"
)

var (
	testSecret  = mocks.NewConfig().Jwt.SecretKey
	testBaseURL = mocks.NewConfig().BaseURL
)

func newTestMiddleware() *Middleware {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(errHandler.New("", testBaseURL, nil, logger), logger, testSecret, testBaseURL)
}

func issueToken(t *testing.T, subject, issuer string, expires time.Time) string {
	t.Helper()

	var claims jwt.Claims
	claims.Subject = subject
	claims.Issued = jwt.NewNumericTime(time.Now())
	claims.NotBefore = jwt.NewNumericTime(time.Now().Add(-time.Minute))
	claims.Expires = jwt.NewNumericTime(expires)
	claims.Issuer = issuer
	claims.Audiences = []string{testBaseURL}

	token, err := claims.HMACSign(jwt.HS256, []byte(testSecret))
	require.NoError(t, err)

	return string(token)
}

func callerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := context.ContextGetAuthenticatedCaller(r)
		if caller == nil {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(caller.Subject))
	})
}

func TestAuthenticate(t *testing.T) {
	mid := newTestMiddleware()
	handler := mid.Authenticate(callerEcho())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"no header", "", http.StatusOK, "anonymous"},
		{"valid token", "Bearer " + issueToken(t, "ops-1", testBaseURL, time.Now().Add(time.Hour)), http.StatusOK, "ops-1"},
		{"expired token", "Bearer " + issueToken(t, "ops-1", testBaseURL, time.Now().Add(-time.Hour)), http.StatusUnauthorized, ""},
		{"wrong issuer", "Bearer " + issueToken(t, "ops-1", "http://elsewhere", time.Now().Add(time.Hour)), http.StatusUnauthorized, ""},
		{"malformed header", "Token abc", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				require.Equal(t, tt.wantBody, rr.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				require.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestRequireAuthenticatedUser(t *testing.T) {
	mid := newTestMiddleware()
	handler := mid.Authenticate(mid.RequireAuthenticatedUser(callerEcho()))

	req := httptest.NewRequest(http.MethodPost, "/contractors/verify", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/contractors/verify", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, "ops-2", testBaseURL, time.Now().Add(time.Hour)))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ops-2", rr.Body.String())
}

func TestRecoverPanic(t *testing.T) {
	mid := newTestMiddleware()
	handler := mid.RecoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
