package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cradoe/treelance/internal/errHandler"
	"github.com/cradoe/treelance/internal/file"
	"github.com/cradoe/treelance/internal/helper"
	"github.com/cradoe/treelance/internal/models"
	"github.com/cradoe/treelance/internal/repository"
	"github.com/cradoe/treelance/internal/response"
	"github.com/cradoe/treelance/internal/stream"
	"github.com/cradoe/treelance/internal/validator"
)

const maxDocumentSize = 10 << 20 // 10 MB

type DocumentResponseData struct {
	ID           string `json:"id"`
	ContractorID string `json:"contractor_id"`
	Kind         string `json:"kind"`
	URL          string `json:"url"`
	UploadedBy   string `json:"uploaded_by"`
	UploadedAt   string `json:"uploaded_at"`
}

type DocumentHandler struct {
	DocumentRepo repository.DocumentRepository
	ActivityRepo repository.ActivityRepository
	FileUploader file.Uploader
	Helper       *helper.HelperRepository

	ErrHandler *errHandler.ErrorRepository
}

func NewDocumentHandler(handler *DocumentHandler) *DocumentHandler {
	return &DocumentHandler{
		DocumentRepo: handler.DocumentRepo,
		ActivityRepo: handler.ActivityRepo,
		FileUploader: handler.FileUploader,
		Helper:       handler.Helper,
		ErrHandler:   handler.ErrHandler,
	}
}

func (h *DocumentHandler) HandleUploadDocument(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := contractorIDFromPath(r)
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize+1024)
	err := r.ParseMultipartForm(maxDocumentSize)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, errors.New("invalid request data"))
		return
	}

	var v validator.Validator

	kind := strings.ToLower(strings.TrimSpace(r.FormValue("kind")))
	v.Check(validator.In(kind, models.DocumentKinds...), fmt.Sprintf("Kind must be one of %s", strings.Join(models.DocumentKinds, ", ")))

	src, header, err := r.FormFile("file")
	v.Check(err == nil, "File is required")

	if v.HasErrors() {
		if src != nil {
			src.Close()
		}
		h.ErrHandler.FailedValidation(w, r, v.Errors)
		return
	}
	defer src.Close()

	folder := "credentials/" + contractorID
	publicID := fmt.Sprintf("%s-%s", kind, stream.NewEventID())

	url, err := h.FileUploader.Upload(r.Context(), src, folder, publicID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, fmt.Errorf("upload %s: %w", header.Filename, err))
		return
	}

	stored, err := h.DocumentRepo.Insert(r.Context(), &models.CredentialDocument{
		ContractorID: contractorID,
		Kind:         kind,
		URL:          url,
		UploadedBy:   actor(r),
	})
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	h.Helper.BackgroundTask(r, func() error {
		_, err := h.ActivityRepo.Insert(ctx, &models.ActivityLog{
			UserID:      stored.UploadedBy,
			Entity:      repository.ActivityLogDocumentEntity,
			EntityId:    stored.ID,
			Description: fmt.Sprintf("Uploaded %s document for %s", kind, contractorID),
		})
		return err
	})

	message := "Document uploaded successfully"
	err = response.JSONCreatedResponse(w, documentResponse(stored), message)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *DocumentHandler) HandleContractorDocuments(w http.ResponseWriter, r *http.Request) {
	contractorID, ok := contractorIDFromPath(r)
	if !ok {
		h.ErrHandler.NotFound(w, r)
		return
	}

	docs, err := h.DocumentRepo.GetAllByContractorID(r.Context(), contractorID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if len(docs) == 0 {
		message := "No documents found"
		err = response.JSONOkResponse(w, []DocumentResponseData{}, message, nil)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	data := make([]DocumentResponseData, len(docs))
	for i := range docs {
		data[i] = documentResponse(&docs[i])
	}

	message := "Data retrieved successfully"
	err = response.JSONOkResponse(w, data, message, nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func documentResponse(doc *models.CredentialDocument) DocumentResponseData {
	return DocumentResponseData{
		ID:           doc.ID,
		ContractorID: doc.ContractorID,
		Kind:         doc.Kind,
		URL:          doc.URL,
		UploadedBy:   doc.UploadedBy,
		UploadedAt:   doc.CreatedAt.UTC().Format(time.RFC3339),
	}
}
