package domain

import (
	"regexp"
	"strings"
)

// VendorProduct is one product's raw scraped data from a vendor site.
// Field availability varies by vendor; the per-vendor mappers know which
// fields to expect. A VendorProduct is immutable once loaded.
type VendorProduct struct {
	// Name is the product name. Some vendor scrapes use "name", others
	// "product_name"; DisplayName resolves whichever is set.
	Name string `json:"name,omitempty"`

	// ProductName is the legacy key used by older scrape outputs.
	ProductName string `json:"product_name,omitempty"`

	// Type is the record type in the target store (e.g. "product").
	Type string `json:"type,omitempty"`

	// URL is the product page on the vendor site.
	URL string `json:"product_url,omitempty"`

	// Sizes is a flat list of available sizes for vendors that publish
	// sizes without per-size codes.
	Sizes []string `json:"sizes,omitempty"`

	// BasicInfo holds general specifications (glass, height).
	BasicInfo *BasicInfo `json:"basic_info,omitempty"`

	// Specs holds the per-configuration options.
	Specs *Specifications `json:"specifications,omitempty"`

	// SourceFile is the JSON file this record was loaded from.
	// Set by the loader, never serialised.
	SourceFile string `json:"-"`
}

// BasicInfo holds the general specification block of a vendor record.
type BasicInfo struct {
	GlassThickness string   `json:"glass_thickness,omitempty"`
	Height         string   `json:"height,omitempty"`
	GlassOptions   []string `json:"glass_options,omitempty"`
}

// Specifications holds the configuration options of a vendor record.
type Specifications struct {
	DoorOptions []DoorOption `json:"door_options,omitempty"`
}

// DoorOption is one size/configuration entry with its vendor code.
type DoorOption struct {
	// Code is the vendor's SKU for this configuration.
	Code string `json:"code"`

	// Size is the nominal opening size (e.g. "700mm").
	Size string `json:"size"`

	// Adjustment is the fitting adjustment range (e.g. "650-700mm").
	Adjustment string `json:"adjustment,omitempty"`

	// PriceExtra is the price delta over the base configuration.
	PriceExtra float64 `json:"price_extra,omitempty"`
}

// DisplayName returns the product name, preferring the "name" key over
// the legacy "product_name" key.
func (p *VendorProduct) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ProductName
}

// MappedProduct is a vendor record normalised for the target store.
// It is derived deterministically from a VendorProduct and has no identity
// beyond its natural key.
type MappedProduct struct {
	// Name is the record name in the target store.
	Name string

	// Type is the target record type (e.g. "product").
	Type string

	// Category is the leaf category name under the vendor root category.
	Category string

	// DefaultCode is the SKU. May be empty when the vendor publishes no
	// codes; NaturalKey then falls back to the name.
	DefaultCode string

	// Description is the generated sales description.
	Description string

	// ListPrice and StandardPrice are the sale and cost prices.
	ListPrice     float64
	StandardPrice float64

	// CustomFields holds vendor-specific x_* fields.
	CustomFields map[string]any

	// ImageFile is the expected image filename inside the vendor data
	// directory. Empty when no image naming convention applies.
	ImageFile string

	// Variants are the size/configuration combinations.
	Variants []VariantSpec
}

// NaturalKey returns the identifier used to detect whether this record
// already exists in the target store. The SKU wins when present; the
// exact name is the fallback for vendors without codes.
func (m *MappedProduct) NaturalKey() string {
	if m.DefaultCode != "" {
		return m.DefaultCode
	}
	return m.Name
}

// VariantSpec is one sellable size/configuration combination.
// Created fresh per MappedProduct and never mutated afterwards.
type VariantSpec struct {
	// Attributes maps attribute names to values (e.g. "Size" -> "700mm").
	Attributes map[string]string

	// PriceExtra is the price adjustment over the base product.
	PriceExtra float64

	// CodeSuffix is appended to the product SKU for this variant.
	CodeSuffix string
}

var nonCodeChars = regexp.MustCompile(`[^A-Z0-9]+`)

// CodeSuffixFor derives a SKU suffix from an attribute value:
// uppercased with non-alphanumerics stripped ("700mm" -> "700MM").
func CodeSuffixFor(value string) string {
	return nonCodeChars.ReplaceAllString(strings.ToUpper(value), "")
}

// ImageSlug derives the conventional image filename stem for a product
// name: lowercased with spaces replaced by underscores.
func ImageSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
