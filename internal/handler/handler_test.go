package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/mocks"
	"github.com/cradoe/treelance/internal/service"
	"github.com/stretchr/testify/require"
)

type testDeps struct {
	verificationRepo *mocks.MockVerificationRepo
	activityRepo     *mocks.MockActivityRepo
	documentRepo     *mocks.MockDocumentRepo
	publisher        *mocks.MockPublisher
	uploader         *mocks.MockUploader
	cache            *mocks.MemoryCache

	errHandler *errHandler.ErrorRepository
	service    *service.VerificationService
}

func newTestDeps() *testDeps {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	d := &testDeps{
		verificationRepo: new(mocks.MockVerificationRepo),
		activityRepo:     new(mocks.MockActivityRepo),
		documentRepo:     new(mocks.MockDocumentRepo),
		publisher:        new(mocks.MockPublisher),
		uploader:         new(mocks.MockUploader),
		cache:            mocks.NewMemoryCache(),
		errHandler:       errHandler.New("", "http://localhost", nil, logger),
	}
	d.service = service.NewVerificationService(d.verificationRepo, d.activityRepo, d.cache, d.publisher, logger, time.Minute)

	return d
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func serve(t *testing.T, mux http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}

	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())

	return rr, env
}
