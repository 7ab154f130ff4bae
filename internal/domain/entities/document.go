package entities

// DocumentStatus is the AI-pick generation status of a document.
type DocumentStatus string

const (
	DocumentUnprocessed DocumentStatus = "UNPROCESSED"
	DocumentProcessing  DocumentStatus = "PROCESSING"
	DocumentProcessed   DocumentStatus = "PROCESSED"
	DocumentFailed      DocumentStatus = "PROCESS_FAILED"
)

// IsTerminal reports whether polling for this status can stop.
func (s DocumentStatus) IsTerminal() bool {
	return s != DocumentProcessing
}

// KeyPoint is one AI-generated question/answer pick of a document.
type KeyPoint struct {
	ID       int64
	Question string
	Answer   string
	Bookmark bool
}

// KeyPoints is the key-point listing of a document together with its status.
type KeyPoints struct {
	DocumentID int64
	Status     DocumentStatus
	Items      []KeyPoint
}
