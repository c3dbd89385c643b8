package models

import "time"

const (
	DocumentKindInsurance  = "insurance"
	DocumentKindLicense    = "license"
	DocumentKindBond       = "bond"
	DocumentKindBackground = "background"
)

var DocumentKinds = []string{DocumentKindInsurance, DocumentKindLicense, DocumentKindBond, DocumentKindBackground}

// CredentialDocument is an uploaded proof backing one of a contractor's claims.
type CredentialDocument struct {
	ID           string    `db:"id"`
	ContractorID string    `db:"contractor_id"`
	Kind         string    `db:"kind"`
	URL          string    `db:"url"`
	UploadedBy   string    `db:"uploaded_by"`
	CreatedAt    time.Time `db:"created_at"`
}
