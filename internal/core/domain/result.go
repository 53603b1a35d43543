package domain

import "time"

// ImportOutcome is the closed set of per-record import outcomes.
type ImportOutcome int

const (
	// OutcomeCreated means the record was created in the target store.
	OutcomeCreated ImportOutcome = iota

	// OutcomeSkipped means a record with the same natural key already
	// existed and nothing was written.
	OutcomeSkipped

	// OutcomeFailed means a remote operation failed for this record.
	OutcomeFailed
)

// String returns the outcome name for logs and reports.
func (o ImportOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ImportResult is the outcome of importing one mapped product.
// Results are accumulated into a RunSummary and never persisted beyond
// the run's report.
type ImportResult struct {
	// Key is the product's natural key.
	Key string `json:"key"`

	// Name is the product name, for human-readable reports.
	Name string `json:"name"`

	// Outcome is one of created, skipped or failed.
	Outcome ImportOutcome `json:"-"`

	// RecordID is the created (or pre-existing) record ID.
	RecordID int64 `json:"record_id,omitempty"`

	// Reason explains a failed outcome.
	Reason string `json:"reason,omitempty"`

	// Notes records partial-success conditions that did not fail the
	// record, such as an image upload error.
	Notes []string `json:"notes,omitempty"`
}

// RunSummary aggregates the outcomes of one import run.
type RunSummary struct {
	// RunID uniquely identifies this run in reports.
	RunID string `json:"run_id"`

	// Vendor is the vendor this run imported.
	Vendor string `json:"vendor"`

	Total   int `json:"total"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	// Failures holds the failed results, including validation rejects.
	Failures []ImportResult `json:"failures,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Add records one result into the summary tallies.
func (s *RunSummary) Add(r ImportResult) {
	switch r.Outcome {
	case OutcomeCreated:
		s.Created++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
		s.Failures = append(s.Failures, r)
	}
}

// Processed returns how many records have an outcome so far.
func (s *RunSummary) Processed() int {
	return s.Created + s.Skipped + s.Failed
}

// Duration returns the wall-clock duration of the run.
func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
