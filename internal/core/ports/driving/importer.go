package driving

import (
	"context"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
)

// ImportOrchestrator sequences a full vendor import run:
// load, map, import, report, summarise.
type ImportOrchestrator interface {
	// Run imports the vendor's full catalogue and returns the aggregate
	// summary. Re-running over the same input is safe and converges to
	// all-skipped.
	Run(ctx context.Context, vendor domain.Vendor) (*domain.RunSummary, error)

	// ImportFile imports a single catalogue file (used by watch mode).
	ImportFile(ctx context.Context, vendor domain.Vendor, path string) (*domain.ImportResult, error)

	// Validate loads and maps the catalogue without any remote call,
	// returning a summary where mapping rejects appear as failures.
	Validate(ctx context.Context, vendor domain.Vendor) (*domain.RunSummary, error)
}

// ScrapeService fetches vendor product pages through the remote browser
// and writes catalogue JSON files for the loader.
type ScrapeService interface {
	// Scrape fetches each URL and writes one product JSON file into the
	// vendor's data directory. Returns how many products were written.
	Scrape(ctx context.Context, vendor domain.Vendor, urls []string) (int, error)
}
