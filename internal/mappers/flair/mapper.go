// Package flair maps FLAIR shower product records to the target store's
// product shape. The mapping tables are fixed and documented here; they
// are vendor data, not computed values.
package flair

import (
	"fmt"
	"strings"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

// VendorName is the registry key for this mapper.
const VendorName = "flair"

// CodePrefix prefixes generated SKUs for records without a vendor code.
const CodePrefix = "FLAIR"

// categoryKeywords maps product-name keywords to category names.
// Checked in order; the first match wins.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"bifold", "Bifold Doors"},
	{"sliding", "Sliding Doors"},
	{"slider", "Sliding Doors"},
	{"pivot", "Pivot Doors"},
	{"hinge", "Hinge Doors"},
	{"quadrant", "Quadrant Enclosures"},
	{"corner", "Corner Entry"},
	{"frameless", "Frameless Enclosures"},
}

// DefaultCategory is used when no keyword matches.
const DefaultCategory = "Shower Enclosures"

// glassFinishes maps FLAIR glass option codes to display names.
var glassFinishes = map[string]string{
	"Silver":     "Clear Glass",
	"MatteBlack": "Matte Black Glass",
	"8mm":        "8mm Tempered Glass",
	"10mm":       "10mm Tempered Glass",
}

// Ensure Mapper implements the interface.
var _ driven.FieldMapper = (*Mapper)(nil)

// Mapper is the FLAIR field mapper. It is stateless and pure.
type Mapper struct{}

// New creates the FLAIR mapper.
func New() *Mapper {
	return &Mapper{}
}

// Vendor returns the registry key.
func (m *Mapper) Vendor() string {
	return VendorName
}

// Attributes returns the FLAIR product attributes with predefined values.
// Size has no predefined values; its values come from the records.
func (m *Mapper) Attributes() map[string][]string {
	return map[string][]string{
		"Size":               nil,
		"Glass Type":         {"Clear Glass", "Matte Black Glass", "Frosted Glass"},
		"Door Configuration": {"Left", "Right", "Reversible"},
		"Frame Finish":       {"Silver", "Matte Black", "Chrome", "Brushed Nickel"},
	}
}

// Map transforms a raw FLAIR record into a MappedProduct.
// Required fields are checked here, before any remote call is possible.
func (m *Mapper) Map(product domain.VendorProduct) (*domain.MappedProduct, error) {
	name := product.DisplayName()
	if name == "" {
		return nil, fmt.Errorf("%w: name", domain.ErrMissingField)
	}
	if product.Type == "" {
		return nil, fmt.Errorf("%w: type", domain.ErrMissingField)
	}

	mapped := &domain.MappedProduct{
		Name:        name,
		Type:        product.Type,
		Category:    Category(name),
		DefaultCode: DefaultCode(product),
		Description: Description(product),
		ImageFile:   domain.ImageSlug(name) + ".png",
		CustomFields: map[string]any{
			"x_vendor": "FLAIR",
		},
		Variants: Variants(product),
	}

	if product.URL != "" {
		mapped.CustomFields["x_product_url"] = product.URL
	}
	if product.BasicInfo != nil {
		if product.BasicInfo.GlassThickness != "" {
			mapped.CustomFields["x_glass_thickness"] = product.BasicInfo.GlassThickness
		}
		if product.BasicInfo.Height != "" {
			mapped.CustomFields["x_standard_height"] = product.BasicInfo.Height
		}
	}

	return mapped, nil
}

// Category determines the category from product-name keywords.
func Category(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range categoryKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.category
		}
	}
	return DefaultCategory
}

// DefaultCode extracts the SKU: the first door-option code when present,
// otherwise a generated code from the first three words of the name.
func DefaultCode(product domain.VendorProduct) string {
	if product.Specs != nil && len(product.Specs.DoorOptions) > 0 {
		if code := product.Specs.DoorOptions[0].Code; code != "" {
			return code
		}
	}

	parts := strings.Fields(product.DisplayName())
	if len(parts) > 3 {
		parts = parts[:3]
	}
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, CodePrefix)
	for _, part := range parts {
		segment := part
		if len(segment) > 3 {
			segment = segment[:3]
		}
		segments = append(segments, strings.ToUpper(segment))
	}
	return strings.Join(segments, "-")
}

// maxListedOptions caps how many configurations the description lists.
const maxListedOptions = 5

// Description builds the sales description from the specification blocks.
func Description(product domain.VendorProduct) string {
	var lines []string

	if info := product.BasicInfo; info != nil {
		lines = append(lines, "**Product Specifications:**")
		if info.GlassThickness != "" {
			lines = append(lines, fmt.Sprintf("- Glass Thickness: %s", info.GlassThickness))
		}
		if info.Height != "" {
			lines = append(lines, fmt.Sprintf("- Standard Height: %s", info.Height))
		}
		if len(info.GlassOptions) > 0 {
			options := make([]string, len(info.GlassOptions))
			for i, opt := range info.GlassOptions {
				options[i] = GlassFinish(opt)
			}
			lines = append(lines, fmt.Sprintf("- Glass Options: %s", strings.Join(options, ", ")))
		}
	}

	if specs := product.Specs; specs != nil && len(specs.DoorOptions) > 0 {
		lines = append(lines, "", "**Available Configurations:**")
		for i, option := range specs.DoorOptions {
			if i == maxListedOptions {
				lines = append(lines, fmt.Sprintf("- Plus %d more options", len(specs.DoorOptions)-maxListedOptions))
				break
			}
			lines = append(lines, fmt.Sprintf("- %s: %s (Adj: %s)", option.Code, option.Size, option.Adjustment))
		}
	}

	if product.URL != "" {
		lines = append(lines, "", fmt.Sprintf("[View on FLAIR website](%s)", product.URL))
	}

	return strings.Join(lines, "\n")
}

// GlassFinish maps a FLAIR glass option code to its display name.
// Unknown codes pass through unchanged.
func GlassFinish(option string) string {
	if name, ok := glassFinishes[option]; ok {
		return name
	}
	return option
}

// Variants enumerates every size/configuration combination in the record,
// one VariantSpec each. Door options win over the flat size list when both
// are present; records with neither have no variants.
func Variants(product domain.VendorProduct) []domain.VariantSpec {
	if product.Specs != nil && len(product.Specs.DoorOptions) > 0 {
		variants := make([]domain.VariantSpec, 0, len(product.Specs.DoorOptions))
		for _, option := range product.Specs.DoorOptions {
			attrs := map[string]string{"Size": option.Size}
			if option.Adjustment != "" {
				attrs["Adjustment"] = option.Adjustment
			}
			variants = append(variants, domain.VariantSpec{
				Attributes: attrs,
				PriceExtra: option.PriceExtra,
				CodeSuffix: domain.CodeSuffixFor(option.Size),
			})
		}
		return variants
	}

	if len(product.Sizes) > 0 {
		variants := make([]domain.VariantSpec, 0, len(product.Sizes))
		for _, size := range product.Sizes {
			variants = append(variants, domain.VariantSpec{
				Attributes: map[string]string{"Size": size},
				CodeSuffix: domain.CodeSuffixFor(size),
			})
		}
		return variants
	}

	return nil
}
