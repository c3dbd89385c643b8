package repository

import (
	"context"

	"github.com/cradoe/treelance/internal/models"
	"github.com/jmoiron/sqlx"
)

type DocumentRepository interface {
	Insert(ctx context.Context, doc *models.CredentialDocument) (*models.CredentialDocument, error)
	GetAllByContractorID(ctx context.Context, contractorID string) ([]models.CredentialDocument, error)
}

type DocumentRepositoryImpl struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

func (repo *DocumentRepositoryImpl) Insert(ctx context.Context, doc *models.CredentialDocument) (*models.CredentialDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO credential_documents (contractor_id, kind, url, uploaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, contractor_id, kind, url, uploaded_by, created_at`

	var stored models.CredentialDocument
	err := repo.db.GetContext(ctx, &stored, query, doc.ContractorID, doc.Kind, doc.URL, doc.UploadedBy)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

func (repo *DocumentRepositoryImpl) GetAllByContractorID(ctx context.Context, contractorID string) ([]models.CredentialDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		SELECT id, contractor_id, kind, url, uploaded_by, created_at
		FROM credential_documents
		WHERE contractor_id = $1
		ORDER BY created_at DESC`

	docs := []models.CredentialDocument{}
	if err := repo.db.SelectContext(ctx, &docs, query, contractorID); err != nil {
		return nil, err
	}

	return docs, nil
}
