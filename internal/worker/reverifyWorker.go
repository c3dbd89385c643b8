package worker

import (
	"encoding/json"
	"fmt"

	"github.com/cradoe/treelance/internal/stream"
)

// ReverifyWorker re-evaluates stored claims named on TopicContractorReverify.
func (wk *Worker) ReverifyWorker() error {
	return wk.consume(reverifyGroupID, stream.TopicContractorReverify, wk.handleReverify)
}

func (wk *Worker) handleReverify(value []byte) error {
	var req stream.ReverifyRequest
	if err := json.Unmarshal(value, &req); err != nil {
		return fmt.Errorf("decode reverify request: %w", err)
	}

	if req.ContractorID == "" {
		return fmt.Errorf("reverify request %s has no contractor id", req.ID)
	}

	outcome, found, err := wk.Service.Reverify(wk.Ctx, req.ContractorID)
	if err != nil {
		return err
	}

	if !found {
		wk.Logger.Warn("reverify requested for unknown contractor", "contractor_id", req.ContractorID, "request_id", req.ID)
		return nil
	}

	wk.Logger.Info("contractor re-verified",
		"contractor_id", req.ContractorID,
		"reason", req.Reason,
		"tier", outcome.Status.Tier,
		"score", outcome.Status.Score,
	)

	return nil
}
