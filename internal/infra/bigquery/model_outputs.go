package bigquery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
)

type ModelOutputRow struct {
	OutputID     string `bigquery:"output_id"`      // REQUIRED
	ParsingRunID string `bigquery:"parsing_run_id"` // REQUIRED
	DocumentID   string `bigquery:"document_id"`    // REQUIRED

	ModelName    string              `bigquery:"model_name"`    // REQUIRED
	ModelVersion bigquery.NullString `bigquery:"model_version"` // NULLABLE

	RawJSON bigquery.NullJSON `bigquery:"raw_json"` // REQUIRED (JSON)

	CreatedTS time.Time           `bigquery:"created_ts"` // REQUIRED
	Notes     bigquery.NullString `bigquery:"notes"`      // NULLABLE
}

// InsertModelOutput archives the raw vision-model output for a parsing
// run, exactly as received, before any interpretation. Uses DML INSERT
// to avoid streaming buffer issues.
func (c *Client) InsertModelOutput(ctx context.Context, parsingRunID, documentID string, rawOutput map[string]interface{}) error {
	rawBytes, err := json.Marshal(rawOutput)
	if err != nil {
		return fmt.Errorf("InsertModelOutput: marshaling raw output: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT %s (
			output_id, parsing_run_id, document_id,
			model_name, raw_json, created_ts
		)
		VALUES (
			@output_id, @parsing_run_id, @document_id,
			@model_name, PARSE_JSON(@raw_json), @created_ts
		)
	`, c.table(modelOutputsTable))

	params := []bigquery.QueryParameter{
		{Name: "output_id", Value: uuid.NewString()},
		{Name: "parsing_run_id", Value: parsingRunID},
		{Name: "document_id", Value: documentID},
		{Name: "model_name", Value: "GEMINI_VISION"},
		{Name: "raw_json", Value: string(rawBytes)},
		{Name: "created_ts", Value: time.Now()},
	}

	if err := c.runDML(ctx, query, params); err != nil {
		return fmt.Errorf("InsertModelOutput: %w", err)
	}
	return nil
}
