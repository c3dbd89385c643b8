// Package service holds the verification workflow shared by the HTTP
// handlers and the background workers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cradoe/treelance/internal/cache"
	"github.com/cradoe/treelance/internal/models"
	"github.com/cradoe/treelance/internal/repository"
	"github.com/cradoe/treelance/internal/stream"
	"github.com/cradoe/treelance/internal/verification"
)

// Cache is the subset of cache.Cache the service reads through.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Requirements groups the met and missing requirement messages.
type Requirements struct {
	Met     []string `json:"met"`
	Missing []string `json:"missing"`
}

// Status is what callers see for a contractor: the stored evaluation plus the
// benefits and payout rate its tier grants.
type Status struct {
	ContractorID string            `json:"contractor_id"`
	Verified     bool              `json:"verified"`
	Tier         verification.Tier `json:"tier"`
	Score        int               `json:"score"`
	Requirements Requirements      `json:"requirements"`
	Benefits     []string          `json:"benefits"`
	PayoutRate   float64           `json:"payout_rate"`
	VerifiedAt   *time.Time        `json:"verified_at,omitempty"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
}

// Outcome is the result of one evaluate-and-store round.
type Outcome struct {
	Status       Status
	PreviousTier verification.Tier
	TierChanged  bool
}

type VerificationService struct {
	repo      repository.VerificationRepository
	activity  repository.ActivityRepository
	cache     Cache
	publisher stream.Publisher
	logger    *slog.Logger
	cacheTTL  time.Duration
	now       func() time.Time
}

func NewVerificationService(
	repo repository.VerificationRepository,
	activity repository.ActivityRepository,
	cache Cache,
	publisher stream.Publisher,
	logger *slog.Logger,
	cacheTTL time.Duration,
) *VerificationService {
	return &VerificationService{
		repo:      repo,
		activity:  activity,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// Verify evaluates claim at the current instant, stores the result as the
// contractor's latest verification and announces it on TopicContractorVerified.
// Only the store is fatal: cache, activity log and event failures are logged.
func (s *VerificationService) Verify(ctx context.Context, contractorID string, claim verification.Claim, actor, source string) (*Outcome, error) {
	now := s.now().UTC()
	result := verification.EvaluateAt(claim, now)

	stored, err := s.repo.Upsert(ctx, models.NewContractorVerification(contractorID, claim, result, now))
	if err != nil {
		return nil, fmt.Errorf("store verification for %s: %w", contractorID, err)
	}

	s.invalidate(ctx, contractorID)

	outcome := &Outcome{
		Status:       statusFromRecord(stored),
		PreviousTier: verification.TierBronze,
		TierChanged:  stored.TierChanged(),
	}
	if stored.PreviousTier.Valid {
		if previous, err := verification.ParseTier(stored.PreviousTier.String); err == nil {
			outcome.PreviousTier = previous
		}
	}

	_, err = s.activity.Insert(ctx, &models.ActivityLog{
		UserID:      actor,
		Entity:      repository.ActivityLogVerificationEntity,
		EntityId:    contractorID,
		Description: fmt.Sprintf("Evaluated as %s with score %d (%s)", result.Tier, result.Score, source),
	})
	if err != nil {
		s.logger.Warn("failed to record verification activity", "contractor_id", contractorID, "error", err)
	}

	event := stream.VerifiedEvent{
		ID:           stream.NewEventID(),
		ContractorID: contractorID,
		Tier:         outcome.Status.Tier.String(),
		PreviousTier: outcome.PreviousTier.String(),
		Score:        outcome.Status.Score,
		Verified:     outcome.Status.Verified,
		PayoutRate:   outcome.Status.PayoutRate,
		Missing:      outcome.Status.Requirements.Missing,
		Source:       source,
		OccurredAt:   now,
	}
	if err := s.publisher.Publish(stream.TopicContractorVerified, contractorID, event); err != nil {
		s.logger.Error("failed to publish verification event", "contractor_id", contractorID, "error", err)
	}

	// A Status read that started before the upsert may have cached the old
	// row in the meantime; drop it again so it does not live for the TTL.
	s.invalidate(ctx, contractorID)

	s.logger.Info("contractor evaluated",
		"contractor_id", contractorID,
		"tier", result.Tier,
		"score", result.Score,
		"verified", result.Verified,
		"tier_changed", outcome.TierChanged,
		"source", source,
	)

	return outcome, nil
}

// Status returns the stored verification for contractorID, reading through
// the cache. A contractor with no stored verification is reported as an
// unverified bronze contractor.
func (s *VerificationService) Status(ctx context.Context, contractorID string) (*Status, error) {
	key := cache.VerificationKey(contractorID)

	var cached Status
	err := s.cache.GetJSON(ctx, key, &cached)
	switch {
	case err == nil:
		return &cached, nil
	case !errors.Is(err, cache.ErrCacheMiss):
		s.logger.Warn("cache read failed, falling back to database", "key", key, "error", err)
	}

	stored, found, err := s.repo.GetByContractorID(ctx, contractorID)
	if err != nil {
		return nil, err
	}

	var status Status
	if found {
		status = statusFromRecord(stored)
	} else {
		status = defaultStatus(contractorID)
	}

	if err := s.cache.SetJSON(ctx, key, status, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache verification", "key", key, "error", err)
	}

	return &status, nil
}

// Reverify evaluates the stored claim for contractorID again. found is false
// when the contractor has never been verified.
func (s *VerificationService) Reverify(ctx context.Context, contractorID string) (outcome *Outcome, found bool, err error) {
	stored, found, err := s.repo.GetByContractorID(ctx, contractorID)
	if err != nil || !found {
		return nil, found, err
	}

	outcome, err = s.Verify(ctx, contractorID, stored.Claim(), repository.ActivityLogSystemUser, stream.SourceReverify)
	if err != nil {
		return nil, true, err
	}

	return outcome, true, nil
}

func (s *VerificationService) invalidate(ctx context.Context, contractorID string) {
	if err := s.cache.Delete(ctx, cache.VerificationKey(contractorID)); err != nil {
		s.logger.Warn("failed to invalidate cached verification", "contractor_id", contractorID, "error", err)
	}
}

func statusFromRecord(v *models.ContractorVerification) Status {
	tier := v.TierOrDefault()

	status := Status{
		ContractorID: v.ContractorID,
		Verified:     v.Verified,
		Tier:         tier,
		Score:        v.Score,
		Requirements: Requirements{
			Met:     nonNil(v.MetRequirements),
			Missing: nonNil(v.MissingRequirements),
		},
		Benefits:   verification.TierBenefits(tier),
		PayoutRate: verification.PayoutRate(tier),
	}

	if v.VerifiedAt.Valid {
		t := v.VerifiedAt.Time
		status.VerifiedAt = &t
	}
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		status.UpdatedAt = &t
	}

	return status
}

func defaultStatus(contractorID string) Status {
	return Status{
		ContractorID: contractorID,
		Verified:     false,
		Tier:         verification.TierBronze,
		Requirements: Requirements{Met: []string{}, Missing: []string{}},
		Benefits:     verification.TierBenefits(verification.TierBronze),
		PayoutRate:   verification.PayoutRate(verification.TierBronze),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
