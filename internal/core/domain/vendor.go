package domain

import "fmt"

// Default import settings applied when a vendor profile leaves them zero.
const (
	DefaultBatchSize      = 10
	DefaultReportInterval = 25
)

// Vendor is the per-vendor import profile: where the scraped catalogue
// lives and how the import run should behave.
type Vendor struct {
	// Name is the vendor identifier (e.g. "flair"). Selects the mapper.
	Name string

	// DisplayName is the human-readable vendor name used in reports and
	// as the root category (e.g. "FLAIR Showers").
	DisplayName string

	// DataDir is the directory of scraped JSON product files and images.
	DataDir string

	// Categories are the subcategories created under the root category.
	Categories []string

	// BatchSize is how many records are processed between log lines.
	BatchSize int

	// ReportInterval is how many records are processed between progress
	// posts to the issue tracker.
	ReportInterval int

	// ImportImages controls whether product images are uploaded.
	ImportImages bool

	// CreateVariants controls whether size/configuration variants are
	// created as child records.
	CreateVariants bool
}

// Validate checks the profile is usable. A bad profile aborts the run
// before any remote call.
func (v *Vendor) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("%w: vendor name is empty", ErrConfiguration)
	}
	if v.DataDir == "" {
		return fmt.Errorf("%w: vendor %q has no data directory", ErrConfiguration, v.Name)
	}
	return nil
}

// Normalise fills zero-valued settings with defaults.
func (v *Vendor) Normalise() {
	if v.DisplayName == "" {
		v.DisplayName = v.Name
	}
	if v.BatchSize <= 0 {
		v.BatchSize = DefaultBatchSize
	}
	if v.ReportInterval <= 0 {
		v.ReportInterval = DefaultReportInterval
	}
}
