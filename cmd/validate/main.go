package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dvloznov/ledger-audit/internal/config"
	"github.com/dvloznov/ledger-audit/internal/domain"
	"github.com/dvloznov/ledger-audit/internal/ledger"
	"github.com/dvloznov/ledger-audit/internal/logger"
	"github.com/dvloznov/ledger-audit/internal/pipeline"
)

// validate runs the validation core over already-extracted rows, with
// no cloud collaborators: JSON rows in, validated rows and
// reconciliation records out. Useful for re-scoring archived
// extractions after a rules change.
func main() {
	log := logger.New()

	inputPath := flag.String("input", "-", "Path to extracted rows JSON (- for stdin)")
	outputPath := flag.String("output", "-", "Path for validated output JSON (- for stdout)")
	configPath := flag.String("config", "", "Path to TOML configuration (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	rules, err := cfg.LedgerRules()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid rules configuration")
	}

	data, err := readInput(*inputPath)
	if err != nil {
		log.Fatal().Err(err).Str("input", *inputPath).Msg("Failed to read input")
	}

	var rawRows []domain.RawRow
	if err := json.Unmarshal(data, &rawRows); err != nil {
		log.Fatal().Err(err).Msg("Input is not a JSON array of rows")
	}

	result := pipeline.ValidateRows(rawRows, rules, cfg.Workers)

	out := struct {
		Rows            []*domain.LedgerRow         `json:"rows"`
		Reconciliations []domain.PageReconciliation `json:"reconciliations"`
		Summary         ledger.BatchSummary         `json:"summary"`
	}{
		Rows:            result.Rows,
		Reconciliations: result.Reconciliations,
		Summary:         result.Summary,
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode output")
	}

	if err := writeOutput(*outputPath, encoded); err != nil {
		log.Fatal().Err(err).Str("output", *outputPath).Msg("Failed to write output")
	}

	s := result.Summary
	fmt.Fprintf(os.Stderr, "Validated %d rows across %d pages; %d mismatched windows, %d low-confidence rows\n",
		s.TotalRows, s.TotalPages, s.WindowsMismatched, s.LowConfidenceRows)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
