package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"

	"github.com/dvloznov/ledger-audit/internal/logger"
)

type ParsingRunRow struct {
	ParsingRunID string `bigquery:"parsing_run_id"` // REQUIRED
	DocumentID   string `bigquery:"document_id"`    // REQUIRED

	StartedTS  time.Time              `bigquery:"started_ts"`  // REQUIRED
	FinishedTS bigquery.NullTimestamp `bigquery:"finished_ts"` // NULLABLE

	ParserType    string `bigquery:"parser_type"`    // NULLABLE
	ParserVersion string `bigquery:"parser_version"` // NULLABLE

	Status       string `bigquery:"status"`        // NULLABLE
	ErrorMessage string `bigquery:"error_message"` // NULLABLE

	Metadata bigquery.NullJSON `bigquery:"metadata"` // NULLABLE
}

// StartParsingRun inserts a new parsing run with status=RUNNING and
// returns the generated parsing_run_id.
func (c *Client) StartParsingRun(ctx context.Context, documentID string) (string, error) {
	parsingRunID := uuid.NewString()

	query := fmt.Sprintf(`
		INSERT %s (
			parsing_run_id,
			document_id,
			started_ts,
			parser_type,
			parser_version,
			status
		)
		VALUES (
			@parsing_run_id,
			@document_id,
			@started_ts,
			@parser_type,
			@parser_version,
			@status
		)
	`, c.table(parsingRunsTable))

	params := []bigquery.QueryParameter{
		{Name: "parsing_run_id", Value: parsingRunID},
		{Name: "document_id", Value: documentID},
		{Name: "started_ts", Value: time.Now()},
		{Name: "parser_type", Value: "GEMINI_VISION"},
		{Name: "parser_version", Value: "v1"},
		{Name: "status", Value: "RUNNING"},
	}

	if err := c.runDML(ctx, query, params); err != nil {
		return "", fmt.Errorf("StartParsingRun: %w", err)
	}

	return parsingRunID, nil
}

// MarkParsingRunFailed sets status=FAILED, finished_ts and
// error_message. It logs rather than returns errors: the caller is
// already on a failure path and the original error must win.
func (c *Client) MarkParsingRunFailed(ctx context.Context, parsingRunID string, parseErr error) {
	log := logger.FromContext(ctx)

	errMsg := ""
	if parseErr != nil {
		errMsg = parseErr.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = @error_message
		WHERE parsing_run_id = @parsing_run_id
	`, c.table(parsingRunsTable))

	params := []bigquery.QueryParameter{
		{Name: "status", Value: "FAILED"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "parsing_run_id", Value: parsingRunID},
	}

	if err := c.runDML(ctx, query, params); err != nil {
		log.Error().
			Err(err).
			Str("parsing_run_id", parsingRunID).
			Msg("MarkParsingRunFailed: update failed")
	}
}

// MarkParsingRunSucceeded sets status=SUCCESS and finished_ts, clears
// error_message.
func (c *Client) MarkParsingRunSucceeded(ctx context.Context, parsingRunID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = @status,
		    finished_ts = @finished_ts,
		    error_message = ""
		WHERE parsing_run_id = @parsing_run_id
	`, c.table(parsingRunsTable))

	params := []bigquery.QueryParameter{
		{Name: "status", Value: "SUCCESS"},
		{Name: "finished_ts", Value: time.Now()},
		{Name: "parsing_run_id", Value: parsingRunID},
	}

	if err := c.runDML(ctx, query, params); err != nil {
		return fmt.Errorf("MarkParsingRunSucceeded: %w", err)
	}
	return nil
}
