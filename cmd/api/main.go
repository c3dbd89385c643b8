package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/cradoe/treelance/internal/app"
	"github.com/cradoe/treelance/internal/version"
	"github.com/cradoe/treelance/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApplication(logger)
	if err != nil {
		return err
	}
	defer application.Close()

	wk := worker.New(&worker.Worker{
		KafkaStream:       application.Kafka,
		Publisher:         application.Kafka,
		VerificationRepo:  application.DB.Verification(),
		Service:           application.Verifications,
		Mailer:            application.Mailer,
		Helper:            application.Helper,
		Logger:            logger,
		Ctx:               ctx,
		NotificationEmail: application.Config.Notifications.Email,
		ReverifyInterval:  application.Config.Reverify.Interval,
		ReverifyBatchSize: application.Config.Reverify.BatchSize,
	})

	for name, start := range map[string]func() error{
		"reverify":    wk.ReverifyWorker,
		"tier-notify": wk.TierNotifyWorker,
	} {
		application.WG.Add(1)
		go func() {
			defer application.WG.Done()
			if err := start(); err != nil {
				logger.Error("worker exited", "worker", name, "error", err)
			}
		}()
	}

	scheduler, err := wk.StartReverifyScheduler()
	if err != nil {
		return err
	}
	defer scheduler.Shutdown()

	return application.ServeHTTP(ctx)
}
