// Package loader reads scraped vendor catalogues from the filesystem.
// A catalogue directory holds either a single all_products.json array or
// one JSON file per product, plus image files named after the products.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
	"github.com/showroom-labs/vendorsync/internal/logger"
)

// CombinedCatalogueFile is the filename holding a whole catalogue as one
// JSON array. When present it takes precedence over per-product files.
const CombinedCatalogueFile = "all_products.json"

// Ensure Loader implements the interface.
var _ driven.CatalogSource = (*Loader)(nil)

// Loader is the filesystem implementation of driven.CatalogSource.
// It performs no side effects other than reads.
type Loader struct{}

// New creates a filesystem catalogue loader.
func New() *Loader {
	return &Loader{}
}

// Load reads every product record under dir.
// Files that fail to parse are skipped with a warning so one malformed
// file never blocks the rest of the catalogue.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.VendorProduct, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDataDirUnreadable, dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrDataDirUnreadable, dir)
	}

	combined := filepath.Join(dir, CombinedCatalogueFile)
	if _, err := os.Stat(combined); err == nil {
		products, err := l.loadCombined(combined)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded %d products from %s", len(products), CombinedCatalogueFile)
		return products, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDataDirUnreadable, dir)
	}

	var products []domain.VendorProduct
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		product, err := l.LoadFile(ctx, path)
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.Name(), err)
			continue
		}
		products = append(products, *product)
	}

	// ReadDir returns entries sorted by name, but be explicit: the import
	// order (and therefore the report order) must be deterministic.
	sort.Slice(products, func(i, j int) bool {
		return products[i].SourceFile < products[j].SourceFile
	})

	logger.Info("Loaded %d products from %s", len(products), dir)
	return products, nil
}

// LoadFile reads a single per-product JSON file.
func (l *Loader) LoadFile(_ context.Context, path string) (*domain.VendorProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var product domain.VendorProduct
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	product.SourceFile = path
	return &product, nil
}

// loadCombined reads a whole catalogue from one JSON array file.
func (l *Loader) loadCombined(path string) ([]domain.VendorProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var products []domain.VendorProduct
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	for i := range products {
		products[i].SourceFile = path
	}
	return products, nil
}
