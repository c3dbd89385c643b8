// Every verification and upload is recorded here so support staff can
// trace how a contractor reached their current tier.
// entity and entity_id are polymorphic: the same table serves verifications and documents.
package repository

import (
	"context"

	"github.com/cradoe/treelance/internal/models"
	"github.com/jmoiron/sqlx"
)

type ActivityRepository interface {
	Insert(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error)
}

const (
	// ActivityLogVerificationEntity is used for actions on the contractor_verifications table
	ActivityLogVerificationEntity = "contractor_verification"

	// ActivityLogDocumentEntity is used for actions on the credential_documents table
	ActivityLogDocumentEntity = "credential_document"

	// ActivityLogSystemUser is the actor recorded for work done by workers rather than a caller
	ActivityLogSystemUser = "system"
)

type ActivityRepositoryImpl struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &ActivityRepositoryImpl{db: db}
}

func (repo *ActivityRepositoryImpl) Insert(ctx context.Context, log *models.ActivityLog) (*models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
		INSERT INTO activity_logs (user_id, entity, entity_id, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, entity, entity_id, description, created_at`

	var stored models.ActivityLog
	err := repo.db.GetContext(ctx, &stored, query,
		log.UserID,
		log.Entity,
		log.EntityId,
		log.Description,
	)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}
