package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cradoe/treelance/internal/helper"
	"github.com/cradoe/treelance/internal/mocks"
	"github.com/cradoe/treelance/internal/models"
	"github.com/cradoe/treelance/internal/service"
	"github.com/cradoe/treelance/internal/stream"
	"github.com/cradoe/treelance/internal/verification"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type workerDeps struct {
	repo      *mocks.MockVerificationRepo
	activity  *mocks.MockActivityRepo
	publisher *mocks.MockPublisher
	mailer    *mocks.MockMailer
	wk        *Worker
}

func newTestWorker() *workerDeps {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	d := &workerDeps{
		repo:      new(mocks.MockVerificationRepo),
		activity:  new(mocks.MockActivityRepo),
		publisher: new(mocks.MockPublisher),
		mailer:    new(mocks.MockMailer),
	}

	svc := service.NewVerificationService(d.repo, d.activity, mocks.NewMemoryCache(), d.publisher, logger, time.Minute)

	d.wk = New(&Worker{
		Publisher:         d.publisher,
		VerificationRepo:  d.repo,
		Service:           svc,
		Mailer:            d.mailer,
		Helper:            helper.New("http://localhost:4444", nil, nil),
		Logger:            logger,
		Ctx:               context.Background(),
		NotificationEmail: "ops@example.com",
		ReverifyInterval:  time.Hour,
		ReverifyBatchSize: 50,
	})

	return d
}

func encode(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestHandleReverify_DowngradesScoreOfLapsedClaim(t *testing.T) {
	d := newTestWorker()

	lapsed := time.Now().AddDate(0, 0, -1)
	future := time.Now().AddDate(1, 0, 0)
	claim := verification.Claim{
		HasInsurance:    true,
		InsuranceExpiry: &lapsed,
		HasLicense:      true,
		LicenseNumber:   "LIC-3",
		LicenseExpiry:   &future,
		CompletedJobs:   12,
	}
	stored := models.NewContractorVerification("ctr-3", claim, verification.EvaluateAt(claim, lapsed.AddDate(0, 0, -1)), time.Now())

	d.repo.On("GetByContractorID", mock.Anything, "ctr-3").Return(stored, true, nil)

	var upserted *models.ContractorVerification
	d.repo.EchoUpsert("silver").Run(func(args mock.Arguments) {
		upserted = args.Get(1).(*models.ContractorVerification)
	})
	d.activity.On("Insert", mock.Anything, mock.Anything).Return(&models.ActivityLog{}, nil)
	d.publisher.On("Publish", stream.TopicContractorVerified, "ctr-3", mock.Anything).Return(nil)

	err := d.wk.handleReverify(encode(t, stream.ReverifyRequest{ID: "r1", ContractorID: "ctr-3", Reason: "credential expired"}))
	require.NoError(t, err)

	require.NotNil(t, upserted)
	require.Equal(t, "silver", upserted.Tier)
	require.Equal(t, 35, upserted.Score)
	require.Contains(t, []string(upserted.MissingRequirements), verification.RequirementInsurance)
}

func TestHandleReverify_UnknownContractorIsSkipped(t *testing.T) {
	d := newTestWorker()
	d.repo.On("GetByContractorID", mock.Anything, "ghost").Return(nil, false, nil)

	require.NoError(t, d.wk.handleReverify(encode(t, stream.ReverifyRequest{ContractorID: "ghost"})))
	d.repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestHandleReverify_RejectsBadMessages(t *testing.T) {
	d := newTestWorker()

	require.Error(t, d.wk.handleReverify([]byte("not json")))
	require.Error(t, d.wk.handleReverify(encode(t, stream.ReverifyRequest{ID: "r2"})))
}

func TestHandleVerified_EmailsOnTierChange(t *testing.T) {
	d := newTestWorker()

	d.mailer.On("Send", "ops@example.com", mock.MatchedBy(func(data map[string]any) bool {
		return data["Tier"] == "gold" && data["PreviousTier"] == "silver" && data["BaseURL"] == "http://localhost:4444"
	}), []string{"tier-change.tmpl"}).Return(nil)

	err := d.wk.handleVerified(encode(t, stream.VerifiedEvent{
		ContractorID: "ctr-9",
		Tier:         "gold",
		PreviousTier: "silver",
		Score:        100,
		Verified:     true,
		PayoutRate:   0.9,
	}))
	require.NoError(t, err)
	d.mailer.AssertExpectations(t)
}

func TestHandleVerified_SkipsUnchangedTier(t *testing.T) {
	d := newTestWorker()

	err := d.wk.handleVerified(encode(t, stream.VerifiedEvent{ContractorID: "ctr-9", Tier: "gold", PreviousTier: "gold"}))
	require.NoError(t, err)
	d.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleVerified_MailFailureIsReturned(t *testing.T) {
	d := newTestWorker()
	d.mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	err := d.wk.handleVerified(encode(t, stream.VerifiedEvent{ContractorID: "ctr-9", Tier: "silver", PreviousTier: "bronze"}))
	require.ErrorContains(t, err, "smtp down")
}

func TestSweepLapsed(t *testing.T) {
	d := newTestWorker()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	d.repo.On("ListLapsed", mock.Anything, now, 50).Return([]models.ContractorVerification{
		{ContractorID: "ctr-a"},
		{ContractorID: "ctr-b"},
		{ContractorID: "ctr-c"},
	}, nil)

	d.publisher.On("Publish", stream.TopicContractorReverify, "ctr-a", mock.Anything).Return(nil)
	d.publisher.On("Publish", stream.TopicContractorReverify, "ctr-b", mock.Anything).Return(errors.New("broker down"))
	d.publisher.On("Publish", stream.TopicContractorReverify, "ctr-c", mock.MatchedBy(func(req stream.ReverifyRequest) bool {
		return req.Reason == lapsedReason && req.RequestedAt.Equal(now) && req.ID != ""
	})).Return(nil)

	queued, err := d.wk.sweepLapsed(now)
	require.NoError(t, err)
	require.Equal(t, 2, queued)
	d.publisher.AssertExpectations(t)
}

func TestSweepLapsed_ListFailure(t *testing.T) {
	d := newTestWorker()
	d.repo.On("ListLapsed", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := d.wk.sweepLapsed(time.Now())
	require.ErrorContains(t, err, "db down")
	d.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
