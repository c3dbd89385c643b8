package app

import (
	"net/http"

	"github.com/cradoe/treelance/internal/handler"
	"github.com/cradoe/treelance/internal/middleware"
	"github.com/cradoe/treelance/internal/version"
)

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	mid := middleware.New(app.errorHandler, app.Logger, app.Config.Jwt.SecretKey, app.Config.BaseURL)

	healthHandler := handler.NewHealthCheckHandler(app.errorHandler, version.Get(), map[string]handler.Pinger{
		"database": app.DB,
		"cache":    app.Cache,
	})

	verificationHandler := handler.NewVerificationHandler(&handler.VerificationHandler{
		Service:    app.Verifications,
		ErrHandler: app.errorHandler,
	})

	tierHandler := handler.NewTierHandler(&handler.TierHandler{
		ErrHandler: app.errorHandler,
	})

	paymentHandler := handler.NewPaymentHandler(&handler.PaymentHandler{
		Service:    app.Verifications,
		ErrHandler: app.errorHandler,
	})

	documentHandler := handler.NewDocumentHandler(&handler.DocumentHandler{
		DocumentRepo: app.DB.Document(),
		ActivityRepo: app.DB.Activity(),
		FileUploader: app.FileUploader,
		Helper:       app.Helper,
		ErrHandler:   app.errorHandler,
	})

	mux.HandleFunc("/", app.errorHandler.NotFound)

	mux.HandleFunc("GET /status", healthHandler.HandleHealthCheck)

	mux.HandleFunc("GET /contractor-tiers", tierHandler.HandleTiers)
	mux.HandleFunc("GET /contractor-tiers/{tier}", tierHandler.HandleSingleTier)

	mux.HandleFunc("GET /contractors/{id}/verification", verificationHandler.HandleContractorVerification)
	mux.HandleFunc("POST /payments/quote", paymentHandler.HandlePaymentQuote)

	// authenticated routes
	mux.Handle("POST /contractors/verify", mid.RequireAuthenticatedUser(http.HandlerFunc(verificationHandler.HandleVerifyContractor)))
	mux.Handle("POST /contractors/{id}/documents", mid.RequireAuthenticatedUser(http.HandlerFunc(documentHandler.HandleUploadDocument)))
	mux.Handle("GET /contractors/{id}/documents", mid.RequireAuthenticatedUser(http.HandlerFunc(documentHandler.HandleContractorDocuments)))

	// known paths answer unsupported methods with 405 rather than the catch-all 404
	for _, path := range []string{
		"/status",
		"/contractor-tiers",
		"/contractor-tiers/{tier}",
		"/contractors/verify",
		"/contractors/{id}/verification",
		"/contractors/{id}/documents",
		"/payments/quote",
	} {
		mux.HandleFunc(path, app.errorHandler.MethodNotAllowed)
	}

	return mid.LogAccess(mid.RecoverPanic(mid.Authenticate(mux)))
}
