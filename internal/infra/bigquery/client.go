package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

const (
	documentsTable       = "documents"
	parsingRunsTable     = "parsing_runs"
	modelOutputsTable    = "model_outputs"
	ledgerRowsTable      = "ledger_rows"
	reconciliationsTable = "reconciliations"
)

// Client wraps a BigQuery client scoped to one project and dataset. It
// is the single persistence handle for the audit pipeline: document and
// parsing-run bookkeeping plus export of validated rows and
// reconciliation records.
type Client struct {
	bq        *bigquery.Client
	projectID string
	datasetID string
}

// NewClient creates a Client. It assumes Application Default Credentials
// are configured.
func NewClient(ctx context.Context, projectID, datasetID string) (*Client, error) {
	bq, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery: creating client: %w", err)
	}
	return &Client{bq: bq, projectID: projectID, datasetID: datasetID}, nil
}

// Close releases the underlying BigQuery client.
func (c *Client) Close() error {
	return c.bq.Close()
}

func (c *Client) table(name string) string {
	return fmt.Sprintf("`%s.%s.%s`", c.projectID, c.datasetID, name)
}

// runDML runs a parameterized DML statement and waits for completion.
func (c *Client) runDML(ctx context.Context, query string, params []bigquery.QueryParameter) error {
	q := c.bq.Query(query)
	q.Parameters = params

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}
