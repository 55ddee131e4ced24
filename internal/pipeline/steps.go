package pipeline

import (
	"context"
	"fmt"
)

// Step 1: CreateDocumentStep creates a document record for the scan.
type CreateDocumentStep struct{ deps *Deps }

func (s *CreateDocumentStep) Execute(ctx context.Context, state *State) error {
	documentID, err := createDocument(ctx, s.deps.Repo, s.deps.Storage, state.GCSURI)
	if err != nil {
		return err
	}
	state.DocumentID = documentID
	return nil
}

// Step 2: StartParsingRunStep starts a parsing run (status=RUNNING).
type StartParsingRunStep struct{ deps *Deps }

func (s *StartParsingRunStep) Execute(ctx context.Context, state *State) error {
	parsingRunID, err := s.deps.Repo.StartParsingRun(ctx, state.DocumentID)
	if err != nil {
		return err
	}
	state.ParsingRunID = parsingRunID
	return nil
}

// Step 3: FetchPDFStep fetches the scan bytes from GCS.
type FetchPDFStep struct{ deps *Deps }

func (s *FetchPDFStep) Execute(ctx context.Context, state *State) error {
	pdfBytes, err := s.deps.Storage.Fetch(ctx, state.GCSURI)
	if err != nil {
		s.deps.Repo.MarkParsingRunFailed(ctx, state.ParsingRunID, err)
		return err
	}
	state.PDFBytes = pdfBytes
	return nil
}

// Step 4: ExtractRowsStep calls the vision model on the scan.
type ExtractRowsStep struct{ deps *Deps }

func (s *ExtractRowsStep) Execute(ctx context.Context, state *State) error {
	rawModelOutput, err := s.deps.Parser.ExtractRows(ctx, state.PDFBytes)
	if err != nil {
		s.deps.Repo.MarkParsingRunFailed(ctx, state.ParsingRunID, err)
		return err
	}
	state.RawModelOutput = rawModelOutput
	return nil
}

// Step 5: StoreModelOutputStep archives raw model output before any
// interpretation, so extraction bugs stay reproducible.
type StoreModelOutputStep struct{ deps *Deps }

func (s *StoreModelOutputStep) Execute(ctx context.Context, state *State) error {
	if err := s.deps.Repo.InsertModelOutput(ctx, state.ParsingRunID, state.DocumentID, state.RawModelOutput); err != nil {
		s.deps.Repo.MarkParsingRunFailed(ctx, state.ParsingRunID, err)
		return err
	}
	return nil
}

// Step 6: TransformRowsStep converts raw model output into raw row records.
type TransformRowsStep struct{ deps *Deps }

func (s *TransformRowsStep) Execute(ctx context.Context, state *State) error {
	rows, err := TransformModelOutput(state.RawModelOutput, state.DocumentID)
	if err != nil {
		s.deps.Repo.MarkParsingRunFailed(ctx, state.ParsingRunID, err)
		return err
	}
	state.RawRows = rows
	return nil
}

// Step 7: ValidateRowsStep runs the validation core over all pages.
// Data-quality problems degrade rows in place; this step only fails on
// a batch with nothing processable at all.
type ValidateRowsStep struct{ deps *Deps }

func (s *ValidateRowsStep) Execute(ctx context.Context, state *State) error {
	state.Result = ValidateRows(state.RawRows, s.deps.Rules, s.deps.Workers)
	if len(state.RawRows) > 0 && len(state.Result.Rows) == 0 {
		err := fmt.Errorf("ValidateRowsStep: no processable rows in %d extracted", len(state.RawRows))
		s.deps.Repo.MarkParsingRunFailed(ctx, state.ParsingRunID, err)
		return err
	}
	return nil
}

// Step 8: ExportResultsStep writes validated rows and reconciliation
// records to the export tables.
type ExportResultsStep struct{ deps *Deps }

func (s *ExportResultsStep) Execute(ctx context.Context, state *State) error {
	if err := s.deps.Repo.InsertLedgerRows(ctx, state.DocumentID, state.ParsingRunID, state.Result.Rows); err != nil {
		s.deps.Repo.MarkParsingRunFailed(ctx, state.ParsingRunID, err)
		return err
	}
	if err := s.deps.Repo.InsertReconciliations(ctx, state.DocumentID, state.ParsingRunID, state.Result.Reconciliations); err != nil {
		s.deps.Repo.MarkParsingRunFailed(ctx, state.ParsingRunID, err)
		return err
	}
	return nil
}

// Step 9: MarkSuccessStep marks the parsing run as SUCCESS.
type MarkSuccessStep struct{ deps *Deps }

func (s *MarkSuccessStep) Execute(ctx context.Context, state *State) error {
	return s.deps.Repo.MarkParsingRunSucceeded(ctx, state.ParsingRunID)
}
