package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvloznov/ledger-audit/internal/config"
	"github.com/dvloznov/ledger-audit/internal/jobs"
	"github.com/dvloznov/ledger-audit/internal/jobs/inmemory"
	"github.com/dvloznov/ledger-audit/internal/logger"
	"github.com/dvloznov/ledger-audit/internal/pipeline"
)

func main() {
	log := logger.New()

	configPath := flag.String("config", "", "Path to TOML configuration (optional)")
	workers := flag.Int("workers", 2, "Number of concurrent audit jobs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// In production this would be Cloud Tasks or Pub/Sub.
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	log.Info().Msg("Starting audit worker service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	handler := func(ctx context.Context, job jobs.Job) error {
		auditJob, ok := job.(*jobs.AuditJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", auditJob.JobID).
			Str("gcs_uri", auditJob.GCSURI).
			Msg("Processing audit job")

		result, err := pipeline.AuditLedgerFromGCS(ctx, cfg, auditJob.GCSURI)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", auditJob.JobID).
				Str("gcs_uri", auditJob.GCSURI).
				Msg("Audit pipeline failed")
			return err
		}

		log.Info().
			Str("job_id", auditJob.JobID).
			Int("rows", result.Summary.TotalRows).
			Int("mismatches", result.Summary.WindowsMismatched).
			Msg("Audit job completed")

		return nil
	}

	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	log.Info().Msg("Worker service started, waiting for jobs...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}
	if err := jobQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close job queue")
	}

	log.Info().Msg("Worker service exited")
}
