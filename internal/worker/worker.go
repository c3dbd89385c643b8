package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/cradoe/treelance/internal/helper"
	"github.com/cradoe/treelance/internal/repository"
	"github.com/cradoe/treelance/internal/service"
	"github.com/cradoe/treelance/internal/smtp"
	"github.com/cradoe/treelance/internal/stream"
)

type Worker struct {
	KafkaStream      *stream.KafkaStream
	Publisher        stream.Publisher
	VerificationRepo repository.VerificationRepository
	Service          *service.VerificationService
	Mailer           smtp.MailerInterface
	Helper           *helper.HelperRepository
	Logger           *slog.Logger
	Ctx              context.Context

	// NotificationEmail receives tier-change emails; empty disables them.
	NotificationEmail string

	ReverifyInterval  time.Duration
	ReverifyBatchSize int
}

const (
	// reverifyGroupID is used by the worker that re-evaluates stored claims on request
	reverifyGroupID = "contractor-reverify-group"

	// tierNotifyGroupID is used by the worker that emails operations when a contractor changes tier
	tierNotifyGroupID = "contractor-tier-notify-group"

	pollTimeoutMs = 100
)

// Our workers need the event stream and the verification workflow;
// worker-specific dependencies are passed in the struct.
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream:       wk.KafkaStream,
		Publisher:         wk.Publisher,
		VerificationRepo:  wk.VerificationRepo,
		Service:           wk.Service,
		Mailer:            wk.Mailer,
		Helper:            wk.Helper,
		Logger:            wk.Logger,
		Ctx:               wk.Ctx,
		NotificationEmail: wk.NotificationEmail,
		ReverifyInterval:  wk.ReverifyInterval,
		ReverifyBatchSize: wk.ReverifyBatchSize,
	}
}

// consume polls topic until wk.Ctx is cancelled, handing every message to
// handle. A failing message is logged and skipped.
func (wk *Worker) consume(groupID, topic string, handle func(value []byte) error) error {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: groupID,
		Topic:   topic,
	})
	if err != nil {
		return err
	}
	defer consumer.Close()

	wk.Logger.Info("worker started", "topic", topic, "group", groupID)

	for {
		select {
		case <-wk.Ctx.Done():
			wk.Logger.Info("worker stopped", "topic", topic, "group", groupID)
			return nil
		default:
		}

		switch e := consumer.Poll(pollTimeoutMs).(type) {
		case *kafka.Message:
			if err := handle(e.Value); err != nil {
				wk.Logger.Error("failed to process message", "topic", topic, "offset", e.TopicPartition.Offset.String(), "error", err)
			}
		case kafka.Error:
			wk.Logger.Error("consumer error", "topic", topic, "code", e.Code().String(), "error", e)
		}
	}
}
