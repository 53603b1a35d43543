package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driving"
	"github.com/showroom-labs/vendorsync/internal/logger"
	"github.com/showroom-labs/vendorsync/internal/mappers"
)

// ReportFileName is the JSON run report written next to the process.
const ReportFileName = "import_report.json"

// Ensure Orchestrator implements the interface.
var _ driving.ImportOrchestrator = (*Orchestrator)(nil)

// Orchestrator sequences a vendor import: load, map, import, report.
// Execution is single-threaded and batch-oriented; one record is fully
// processed before the next begins.
type Orchestrator struct {
	loader   driven.CatalogSource
	registry *mappers.Registry
	importer *Importer
	reporter *ProgressReporter

	// ReportDir is where the run report file is written.
	// Empty means the current working directory.
	ReportDir string
}

// NewOrchestrator creates an orchestrator over the given collaborators.
func NewOrchestrator(
	loader driven.CatalogSource,
	registry *mappers.Registry,
	importer *Importer,
	reporter *ProgressReporter,
) *Orchestrator {
	return &Orchestrator{
		loader:   loader,
		registry: registry,
		importer: importer,
		reporter: reporter,
	}
}

// Run imports the vendor's full catalogue. Configuration problems abort
// before any remote call; per-record problems are recorded in the summary
// and never stop the batch. Re-running converges to all-skipped.
func (o *Orchestrator) Run(ctx context.Context, vendor domain.Vendor) (*domain.RunSummary, error) {
	summary, mapper, products, err := o.prepare(ctx, vendor)
	if err != nil {
		return nil, err
	}
	vendor.Normalise()

	logger.Section(fmt.Sprintf("Importing %s", vendor.DisplayName))

	if err := o.importer.EnsureCategories(ctx, vendor.DisplayName, vendor.Categories); err != nil {
		return nil, err
	}
	if err := o.importer.EnsureAttributes(ctx, mapper.Attributes()); err != nil {
		return nil, err
	}

	opts := ImportOptions{
		DataDir:        vendor.DataDir,
		ImportImages:   vendor.ImportImages,
		CreateVariants: vendor.CreateVariants,
	}

	seen := make(map[string]bool, len(products))
	for i, product := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i%vendor.BatchSize == 0 {
			logger.Info("Processing batch %d (%d/%d)", i/vendor.BatchSize+1, i, summary.Total)
		}

		mapped, result := o.mapOne(mapper, product, seen)
		if result != nil {
			summary.Add(*result)
			o.reporter.Progress(ctx, summary, summary.Total)
			continue
		}

		summary.Add(o.importer.Import(ctx, mapped, opts))
		o.reporter.Progress(ctx, summary, summary.Total)
	}

	o.finish(ctx, summary)
	return summary, nil
}

// ImportFile imports one catalogue file. Used by watch mode when a new
// product file appears in the data directory.
func (o *Orchestrator) ImportFile(ctx context.Context, vendor domain.Vendor, path string) (*domain.ImportResult, error) {
	if err := vendor.Validate(); err != nil {
		return nil, err
	}
	vendor.Normalise()

	mapper, err := o.registry.Get(vendor.Name)
	if err != nil {
		return nil, err
	}

	product, err := o.loader.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	mapped, err := mapper.Map(*product)
	if err != nil {
		return nil, err
	}

	if err := o.importer.EnsureCategories(ctx, vendor.DisplayName, vendor.Categories); err != nil {
		return nil, err
	}
	if err := o.importer.EnsureAttributes(ctx, mapper.Attributes()); err != nil {
		return nil, err
	}

	result := o.importer.Import(ctx, mapped, ImportOptions{
		DataDir:        vendor.DataDir,
		ImportImages:   vendor.ImportImages,
		CreateVariants: vendor.CreateVariants,
	})
	return &result, nil
}

// Validate loads and maps the catalogue without touching the remote store.
// Mapping rejects and duplicate keys appear as failures in the summary.
func (o *Orchestrator) Validate(ctx context.Context, vendor domain.Vendor) (*domain.RunSummary, error) {
	summary, mapper, products, err := o.prepare(ctx, vendor)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(products))
	for _, product := range products {
		if _, result := o.mapOne(mapper, product, seen); result != nil {
			summary.Add(*result)
		}
	}

	summary.FinishedAt = time.Now()
	return summary, nil
}

// prepare runs the shared pre-batch steps: profile validation, mapper
// resolution and catalogue loading. All failures here are fatal and occur
// before any remote call.
func (o *Orchestrator) prepare(ctx context.Context, vendor domain.Vendor) (*domain.RunSummary, driven.FieldMapper, []domain.VendorProduct, error) {
	if err := vendor.Validate(); err != nil {
		return nil, nil, nil, err
	}

	mapper, err := o.registry.Get(vendor.Name)
	if err != nil {
		return nil, nil, nil, err
	}

	products, err := o.loader.Load(ctx, vendor.DataDir)
	if err != nil {
		return nil, nil, nil, err
	}

	summary := &domain.RunSummary{
		RunID:     uuid.NewString(),
		Vendor:    vendor.Name,
		Total:     len(products),
		StartedAt: time.Now(),
	}
	return summary, mapper, products, nil
}

// mapOne maps a single record, returning a failure result for validation
// rejects and duplicate natural keys. On success it marks the key seen.
func (o *Orchestrator) mapOne(mapper driven.FieldMapper, product domain.VendorProduct, seen map[string]bool) (*domain.MappedProduct, *domain.ImportResult) {
	mapped, err := mapper.Map(product)
	if err != nil {
		logger.Warn("Rejected %q: %v", product.DisplayName(), err)
		return nil, &domain.ImportResult{
			Key:     product.DisplayName(),
			Name:    product.DisplayName(),
			Outcome: domain.OutcomeFailed,
			Reason:  err.Error(),
		}
	}

	key := mapped.NaturalKey()
	if seen[key] {
		err := fmt.Errorf("%w: %s", domain.ErrDuplicateKey, key)
		logger.Warn("Rejected %q: %v", mapped.Name, err)
		return nil, &domain.ImportResult{
			Key:     key,
			Name:    mapped.Name,
			Outcome: domain.OutcomeFailed,
			Reason:  err.Error(),
		}
	}
	seen[key] = true

	return mapped, nil
}

// finish stamps the summary, posts the final report and writes the run
// report file. Report problems never fail the run.
func (o *Orchestrator) finish(ctx context.Context, summary *domain.RunSummary) {
	summary.FinishedAt = time.Now()

	logger.Info("Import complete: %d created, %d skipped, %d failed",
		summary.Created, summary.Skipped, summary.Failed)

	o.reporter.Final(ctx, summary)

	if err := o.writeReport(summary); err != nil {
		logger.Warn("Could not write run report: %v", err)
	}
}

// writeReport saves the run summary as JSON.
func (o *Orchestrator) writeReport(summary *domain.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(o.ReportDir, ReportFileName)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	logger.Info("Run report saved to %s", path)
	return nil
}
