package models

import (
	"time"

	"github.com/lib/pq"
)

// ContractorTier mirrors one row of the in-code tier catalog so that
// reporting queries and the tier foreign key can see it.
type ContractorTier struct {
	Name               string         `db:"name"`
	Rank               int            `db:"rank"`
	PayoutRate         float64        `db:"payout_rate"`
	MinJobs            int            `db:"min_jobs"`
	RequiresInsurance  bool           `db:"requires_insurance"`
	RequiresLicense    bool           `db:"requires_license"`
	RequiresBackground bool           `db:"requires_background"`
	MinBond            float64        `db:"min_bond"`
	Benefits           pq.StringArray `db:"benefits"`
	UpdatedAt          time.Time      `db:"updated_at"`
}
