package pipeline

import (
	"context"
	"fmt"
	"time"

	bigquerylib "cloud.google.com/go/bigquery"
	"github.com/google/uuid"

	infra "github.com/dvloznov/ledger-audit/internal/infra/bigquery"
)

// createDocument inserts a row into the documents table for this scan.
// The document id doubles as the batch's file_id: every validated row
// and reconciliation record is keyed under it.
func createDocument(ctx context.Context, repo AuditRepository, storage StorageService, gcsURI string) (string, error) {
	documentID := uuid.NewString()

	row := &infra.DocumentRow{
		DocumentID:       documentID,
		UserID:           DefaultUserID,
		GCSURI:           gcsURI,
		DocumentType:     DefaultDocumentType,
		SourceSystem:     DefaultSourceSystem,
		ParsingStatus:    "PENDING",
		UploadTS:         time.Now(),
		OriginalFilename: storage.ObjectName(gcsURI),
		Metadata:         bigquerylib.NullJSON{Valid: false},
	}

	if err := repo.InsertDocument(ctx, row); err != nil {
		return "", fmt.Errorf("createDocument: inserting row: %w", err)
	}

	return documentID, nil
}
