package pipeline

// Default values for document processing and parsing. The rule set and
// model name are configurable (internal/config); these identify what a
// document is when the uploader does not say.
const (
	// DefaultUserID is the default user identifier for documents.
	DefaultUserID = "denis"

	// DefaultSourceSystem is the default source archive for scans.
	DefaultSourceSystem = "PARISH_ARCHIVE"

	// DefaultDocumentType is the default document type for uploaded files.
	DefaultDocumentType = "LEDGER_SCAN"

	// DefaultModelName is the default Gemini model used for extraction.
	DefaultModelName = "gemini-2.5-flash"
)
