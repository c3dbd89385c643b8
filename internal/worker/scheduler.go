package worker

import (
	"time"

	"github.com/cradoe/treelance/internal/stream"
	"github.com/go-co-op/gocron/v2"
)

const lapsedReason = "credential expired"

// StartReverifyScheduler periodically looks for stored verifications whose
// insurance or license expired after they were last evaluated and asks the
// reverify worker to evaluate them again. The caller owns the returned
// scheduler and must Shutdown it.
func (wk *Worker) StartReverifyScheduler() (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(wk.ReverifyInterval),
		gocron.NewTask(func() {
			n, err := wk.sweepLapsed(time.Now().UTC())
			if err != nil {
				wk.Logger.Error("reverify sweep failed", "error", err)
				return
			}
			if n > 0 {
				wk.Logger.Info("reverify sweep queued contractors", "count", n)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

// sweepLapsed queues one batch of lapsed verifications and reports how many
// were queued. Rows are re-stamped when the reverify worker stores them, so
// later sweeps pick up the next batch.
func (wk *Worker) sweepLapsed(now time.Time) (int, error) {
	lapsed, err := wk.VerificationRepo.ListLapsed(wk.Ctx, now, wk.ReverifyBatchSize)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, v := range lapsed {
		req := stream.ReverifyRequest{
			ID:           stream.NewEventID(),
			ContractorID: v.ContractorID,
			Reason:       lapsedReason,
			RequestedAt:  now,
		}

		if err := wk.Publisher.Publish(stream.TopicContractorReverify, v.ContractorID, req); err != nil {
			wk.Logger.Error("failed to queue reverify", "contractor_id", v.ContractorID, "error", err)
			continue
		}
		queued++
	}

	return queued, nil
}
