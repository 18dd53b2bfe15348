package ingest

import "time"

// Stages at which a document can fail.
const (
	StageRead  = "read"
	StageStore = "store"
)

// Failure records one document that did not make it into the store.
type Failure struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

// Summary is the batch-level outcome. Skipped counts unreadable
// documents, Failed counts persistence failures; both leave the rest
// of the batch untouched.
type Summary struct {
	RunID      string    `json:"run_id"`
	Extractors []string  `json:"extractors"` // chain that ran, in precedence order
	Processed  int       `json:"processed"`
	Succeeded  int       `json:"succeeded"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	Failures   []Failure `json:"failures,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// OK reports whether every document was persisted.
func (s Summary) OK() bool {
	return s.Skipped == 0 && s.Failed == 0
}
