package driven

import (
	"context"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
)

// CatalogSource produces raw vendor products from a scraped catalogue.
// The filesystem loader is the shipped implementation.
type CatalogSource interface {
	// Load reads every product record under dir.
	// Unparsable files are skipped with a warning; a missing or unreadable
	// directory is a configuration error.
	Load(ctx context.Context, dir string) ([]domain.VendorProduct, error)

	// LoadFile reads a single product record file.
	LoadFile(ctx context.Context, path string) (*domain.VendorProduct, error)
}

// FieldMapper transforms one vendor's raw records into the target store's
// shape. Implementations are pure: mapping the same record twice yields
// identical results, and no remote calls are made.
type FieldMapper interface {
	// Vendor returns the vendor identifier this mapper handles.
	Vendor() string

	// Map transforms a raw record. A missing required field yields an
	// error wrapping domain.ErrMissingField naming the field.
	Map(product domain.VendorProduct) (*domain.MappedProduct, error)

	// Attributes returns the product attributes this vendor uses, with
	// their predefined values. Attributes without predefined values are
	// created lazily from the records themselves.
	Attributes() map[string][]string
}
