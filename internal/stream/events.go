package stream

import (
	"time"

	"github.com/google/uuid"
)

// VerifiedEvent is published after a verification result has been stored.
type VerifiedEvent struct {
	ID           string    `json:"id"`
	ContractorID string    `json:"contractor_id"`
	Tier         string    `json:"tier"`
	PreviousTier string    `json:"previous_tier"`
	Score        int       `json:"score"`
	Verified     bool      `json:"verified"`
	PayoutRate   float64   `json:"payout_rate"`
	Missing      []string  `json:"missing"`
	Source       string    `json:"source"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ReverifyRequest asks the reverify worker to evaluate a stored claim again.
type ReverifyRequest struct {
	ID           string    `json:"id"`
	ContractorID string    `json:"contractor_id"`
	Reason       string    `json:"reason"`
	RequestedAt  time.Time `json:"requested_at"`
}

const (
	SourceAPI      = "api"
	SourceReverify = "reverify"
)

func NewEventID() string {
	return uuid.NewString()
}
