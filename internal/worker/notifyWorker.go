package worker

import (
	"encoding/json"
	"fmt"

	"github.com/cradoe/treelance/internal/stream"
)

// TierNotifyWorker emails the operations mailbox whenever a contractor's
// tier changes.
func (wk *Worker) TierNotifyWorker() error {
	return wk.consume(tierNotifyGroupID, stream.TopicContractorVerified, wk.handleVerified)
}

func (wk *Worker) handleVerified(value []byte) error {
	var event stream.VerifiedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decode verified event: %w", err)
	}

	if event.Tier == event.PreviousTier || wk.NotificationEmail == "" {
		return nil
	}

	data := wk.Helper.NewEmailData()
	data["ContractorID"] = event.ContractorID
	data["Tier"] = event.Tier
	data["PreviousTier"] = event.PreviousTier
	data["Score"] = event.Score
	data["Verified"] = event.Verified
	data["PayoutRate"] = event.PayoutRate
	data["Missing"] = event.Missing

	err := wk.Mailer.Send(wk.NotificationEmail, data, "tier-change.tmpl")
	if err != nil {
		return fmt.Errorf("send tier change email for %s: %w", event.ContractorID, err)
	}

	wk.Logger.Info("tier change notification sent", "contractor_id", event.ContractorID, "from", event.PreviousTier, "to", event.Tier)
	return nil
}
