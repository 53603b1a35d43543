package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
	"github.com/showroom-labs/vendorsync/internal/logger"
)

// maxReportedFailures caps how many failures a final comment lists.
const maxReportedFailures = 10

// ProgressReporter posts run status to an issue tracker at a configurable
// record interval. Every call is best effort: reporting failures are
// logged and swallowed, never surfaced to the import pipeline.
type ProgressReporter struct {
	tracker  driven.IssueTracker
	repo     string
	issue    int
	interval int
}

// NewProgressReporter creates a reporter posting to the given issue every
// interval records. A nil tracker or empty repo disables reporting.
func NewProgressReporter(tracker driven.IssueTracker, repo string, issue, interval int) *ProgressReporter {
	if interval <= 0 {
		interval = domain.DefaultReportInterval
	}
	return &ProgressReporter{
		tracker:  tracker,
		repo:     repo,
		issue:    issue,
		interval: interval,
	}
}

// Enabled reports whether progress posts will actually go anywhere.
func (r *ProgressReporter) Enabled() bool {
	return r.tracker != nil && r.repo != "" && r.issue > 0
}

// Progress posts a status comment when the processed count crosses the
// reporting interval. Call it after every record.
func (r *ProgressReporter) Progress(ctx context.Context, summary *domain.RunSummary, total int) {
	if !r.Enabled() {
		return
	}
	processed := summary.Processed()
	if processed == 0 || processed%r.interval != 0 || processed == total {
		return
	}

	body := fmt.Sprintf("Import progress for %s: %d/%d processed (%d created, %d skipped, %d failed, %.1f%% success)",
		summary.Vendor, processed, total, summary.Created, summary.Skipped, summary.Failed, successRate(summary))
	r.post(ctx, body)
}

// Final posts the end-of-run summary comment, listing failures.
func (r *ProgressReporter) Final(ctx context.Context, summary *domain.RunSummary) {
	if !r.Enabled() {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Import run `%s` for **%s** finished in %s.\n\n", summary.RunID, summary.Vendor, summary.Duration().Round(time.Second))
	fmt.Fprintf(&b, "| Total | Created | Skipped | Failed |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n", summary.Total, summary.Created, summary.Skipped, summary.Failed)

	if len(summary.Failures) > 0 {
		fmt.Fprintf(&b, "\nFailures:\n")
		for i, failure := range summary.Failures {
			if i == maxReportedFailures {
				fmt.Fprintf(&b, "- ... and %d more\n", len(summary.Failures)-maxReportedFailures)
				break
			}
			fmt.Fprintf(&b, "- `%s`: %s\n", failure.Key, failure.Reason)
		}
	}

	r.post(ctx, b.String())
}

// post sends one comment, swallowing any error.
func (r *ProgressReporter) post(ctx context.Context, body string) {
	if err := r.tracker.PostComment(ctx, r.repo, r.issue, body); err != nil {
		logger.Warn("%v: %v", domain.ErrReporting, err)
	}
}

// successRate is the percentage of processed records that did not fail.
func successRate(summary *domain.RunSummary) float64 {
	processed := summary.Processed()
	if processed == 0 {
		return 0
	}
	return float64(processed-summary.Failed) / float64(processed) * 100
}
