package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// DocumentRow is one scanned ledger volume registered for auditing. The
// document_id doubles as the file_id on every exported row.
type DocumentRow struct {
	DocumentID string `bigquery:"document_id"` // REQUIRED
	UserID     string `bigquery:"user_id"`     // NULLABLE
	GCSURI     string `bigquery:"gcs_uri"`     // REQUIRED

	DocumentType string `bigquery:"document_type"` // REQUIRED
	SourceSystem string `bigquery:"source_system"` // NULLABLE

	ArchiveReference string `bigquery:"archive_reference"` // NULLABLE

	LedgerStartDate bigquery.NullDate `bigquery:"ledger_start_date"` // NULLABLE
	LedgerEndDate   bigquery.NullDate `bigquery:"ledger_end_date"`   // NULLABLE

	UploadTS    time.Time              `bigquery:"upload_ts"`    // REQUIRED
	ProcessedTS bigquery.NullTimestamp `bigquery:"processed_ts"` // NULLABLE

	ParsingStatus string `bigquery:"parsing_status"` // NULLABLE

	OriginalFilename string `bigquery:"original_filename"` // NULLABLE
	FileMimeType     string `bigquery:"file_mime_type"`    // NULLABLE

	ChecksumSHA256 string `bigquery:"checksum_sha256"` // NULLABLE

	Metadata bigquery.NullJSON `bigquery:"metadata"` // NULLABLE
}

// InsertDocument inserts a single DocumentRow into the documents table.
func (c *Client) InsertDocument(ctx context.Context, row *DocumentRow) error {
	inserter := c.bq.Dataset(c.datasetID).Table(documentsTable).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("InsertDocument: inserting row: %w", err)
	}
	return nil
}

// ListAllDocuments retrieves every registered document, newest first.
func (c *Client) ListAllDocuments(ctx context.Context) ([]*DocumentRow, error) {
	query := fmt.Sprintf(`
		SELECT
			document_id,
			user_id,
			gcs_uri,
			document_type,
			source_system,
			archive_reference,
			ledger_start_date,
			ledger_end_date,
			upload_ts,
			processed_ts,
			parsing_status,
			original_filename,
			file_mime_type,
			checksum_sha256,
			metadata
		FROM %s
		ORDER BY upload_ts DESC
	`, c.table(documentsTable))

	it, err := c.bq.Query(query).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListAllDocuments: reading query: %w", err)
	}

	var documents []*DocumentRow
	for {
		var row DocumentRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListAllDocuments: iterating: %w", err)
		}
		documents = append(documents, &row)
	}

	return documents, nil
}
