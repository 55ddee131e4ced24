package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dvloznov/ledger-audit/internal/config"
	"github.com/dvloznov/ledger-audit/internal/logger"
	"github.com/dvloznov/ledger-audit/internal/pipeline"
)

func main() {
	log := logger.New()

	gcsURI := flag.String("gcs-uri", "", "GCS URI of the ledger scan PDF (e.g. gs://bucket/scan.pdf)")
	configPath := flag.String("config", "", "Path to TOML configuration (optional)")
	flag.Parse()

	if *gcsURI == "" {
		log.Fatal().Msg("Error: --gcs-uri is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Timeout so the CLI doesn't hang on a stuck extraction.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().Str("gcs_uri", *gcsURI).Msg("Starting ledger audit")

	result, err := pipeline.AuditLedgerFromGCS(ctx, cfg, *gcsURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Audit failed")
	}

	s := result.Summary
	fmt.Printf("Audit completed: %d pages, %d rows (avg confidence %.3f)\n",
		s.TotalPages, s.TotalRows, s.AvgConfidence)
	fmt.Printf("Reconciliation: %d matched, %d mismatched, %d indeterminate\n",
		s.WindowsMatched, s.WindowsMismatched, s.WindowsIndetermin)
	if s.RangeViolationRows > 0 {
		fmt.Printf("Rows with currency-range violations: %d\n", s.RangeViolationRows)
	}
	if s.IncompletePages > 0 {
		fmt.Printf("Incomplete pages (rows dropped at extraction): %d\n", s.IncompletePages)
	}
}
