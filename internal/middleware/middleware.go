package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cradoe/treelance/internal/context"
	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/response"

	"github.com/pascaldekloe/jwt"
	"github.com/tomasen/realip"
)

type Middleware struct {
	errHandler *errHandler.ErrorRepository
	logger     *slog.Logger
	jwtSecret  string
	baseURL    string
}

func New(errHandler *errHandler.ErrorRepository, logger *slog.Logger, jwtSecret, baseURL string) *Middleware {
	return &Middleware{
		errHandler: errHandler,
		logger:     logger,
		jwtSecret:  jwtSecret,
		baseURL:    baseURL,
	}
}

func (mid *Middleware) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				mid.errHandler.ServerError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) LogAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount, "duration", time.Since(start))

		mid.logger.Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

// Authenticate attaches the token's caller to the request when a valid bearer
// token is present. Requests without an Authorization header pass through.
func (mid *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")
		if authorizationHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			mid.errHandler.InvalidAuthenticationToken(w, r)
			return
		}

		claims, err := jwt.HMACCheck([]byte(headerParts[1]), []byte(mid.jwtSecret))
		if err != nil {
			mid.errHandler.InvalidAuthenticationToken(w, r)
			return
		}

		if !claims.Valid(time.Now()) {
			mid.errHandler.InvalidAuthenticationToken(w, r)
			return
		}

		if claims.Issuer != mid.baseURL {
			mid.errHandler.InvalidAuthenticationToken(w, r)
			return
		}

		if !claims.AcceptAudience(mid.baseURL) {
			mid.errHandler.InvalidAuthenticationToken(w, r)
			return
		}

		if claims.Subject == "" {
			mid.errHandler.InvalidAuthenticationToken(w, r)
			return
		}

		r = context.ContextSetAuthenticatedCaller(r, &context.Caller{Subject: claims.Subject})
		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) RequireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if context.ContextGetAuthenticatedCaller(r) == nil {
			mid.errHandler.AuthenticationRequired(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
