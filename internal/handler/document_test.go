package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cradoe/treelance/internal/context"
	"github.com/cradoe/treelance/internal/helper"
	"github.com/cradoe/treelance/internal/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDocumentHandler(d *testDeps) *DocumentHandler {
	return NewDocumentHandler(&DocumentHandler{
		DocumentRepo: d.documentRepo,
		ActivityRepo: d.activityRepo,
		FileUploader: d.uploader,
		Helper:       helper.New("http://localhost", nil, d.errHandler),
		ErrHandler:   d.errHandler,
	})
}

func newDocumentMux(h *DocumentHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /contractors/{id}/documents", h.HandleUploadDocument)
	mux.HandleFunc("GET /contractors/{id}/documents", h.HandleContractorDocuments)
	return mux
}

func multipartUpload(t *testing.T, kind string, withFile bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	require.NoError(t, mw.WriteField("kind", kind))
	if withFile {
		part, err := mw.CreateFormFile("file", "insurance.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 certificate"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func TestHandleUploadDocument(t *testing.T) {
	d := newTestDeps()
	h := newDocumentHandler(d)

	d.uploader.On("Upload", mock.Anything, mock.Anything, "credentials/ctr-1", mock.MatchedBy(func(id string) bool {
		return len(id) > len("insurance-")
	})).Return("https://res.cloudinary.com/demo/credentials/ctr-1/insurance.pdf", nil)

	d.documentRepo.On("Insert", mock.Anything, mock.MatchedBy(func(doc *models.CredentialDocument) bool {
		return doc.ContractorID == "ctr-1" && doc.Kind == "insurance" && doc.UploadedBy == "ops-1"
	})).Return(&models.CredentialDocument{
		ID:           "doc-1",
		ContractorID: "ctr-1",
		Kind:         "insurance",
		URL:          "https://res.cloudinary.com/demo/credentials/ctr-1/insurance.pdf",
		UploadedBy:   "ops-1",
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil)

	d.activityRepo.On("Insert", mock.Anything, mock.MatchedBy(func(l *models.ActivityLog) bool {
		return l.EntityId == "doc-1" && l.UserID == "ops-1"
	})).Return(&models.ActivityLog{}, nil)

	body, contentType := multipartUpload(t, "Insurance", true)
	req := httptest.NewRequest(http.MethodPost, "/contractors/ctr-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req = context.ContextSetAuthenticatedCaller(req, &context.Caller{Subject: "ops-1"})

	rr := httptest.NewRecorder()
	newDocumentMux(h).ServeHTTP(rr, req)
	h.Helper.WG.Wait()

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))

	var data DocumentResponseData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Equal(t, "doc-1", data.ID)
	require.Equal(t, "2025-06-01T12:00:00Z", data.UploadedAt)

	d.uploader.AssertExpectations(t)
	d.documentRepo.AssertExpectations(t)
	d.activityRepo.AssertExpectations(t)
}

func TestHandleUploadDocument_Validation(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		withFile bool
	}{
		{"unknown kind", "passport", true},
		{"missing file", "license", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			h := newDocumentHandler(d)

			body, contentType := multipartUpload(t, tt.kind, tt.withFile)
			req := httptest.NewRequest(http.MethodPost, "/contractors/ctr-1/documents", body)
			req.Header.Set("Content-Type", contentType)

			rr := httptest.NewRecorder()
			newDocumentMux(h).ServeHTTP(rr, req)

			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			d.uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleUploadDocument_UploadFailure(t *testing.T) {
	d := newTestDeps()
	h := newDocumentHandler(d)

	d.uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("cloud down"))

	body, contentType := multipartUpload(t, "bond", true)
	req := httptest.NewRequest(http.MethodPost, "/contractors/ctr-1/documents", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	newDocumentMux(h).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	d.documentRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestHandleContractorDocuments(t *testing.T) {
	d := newTestDeps()
	h := newDocumentHandler(d)

	d.documentRepo.On("GetAllByContractorID", mock.Anything, "ctr-1").Return([]models.CredentialDocument{
		{ID: "doc-1", ContractorID: "ctr-1", Kind: "insurance", URL: "https://x/1"},
		{ID: "doc-2", ContractorID: "ctr-1", Kind: "license", URL: "https://x/2"},
	}, nil)
	d.documentRepo.On("GetAllByContractorID", mock.Anything, "ctr-2").Return([]models.CredentialDocument{}, nil)

	rr, env := serve(t, newDocumentMux(h), http.MethodGet, "/contractors/ctr-1/documents", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var data []DocumentResponseData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data, 2)
	require.Equal(t, "license", data[1].Kind)

	rr, env = serve(t, newDocumentMux(h), http.MethodGet, "/contractors/ctr-2/documents", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "No documents found", env.Message)
}
