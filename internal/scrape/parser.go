// Package scrape parses vendor product pages into raw catalogue records.
// The browser automation collaborator fetches the rendered HTML; this
// package only extracts fields from it.
package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
)

// PageHTMLScript is the expression evaluated in the remote browser to
// obtain the rendered page markup.
const PageHTMLScript = "document.documentElement.outerHTML"

// Spec labels recognised in product page specification lists.
const (
	labelGlassThickness = "glass thickness"
	labelHeight         = "height"
	labelGlassOptions   = "glass options"
)

// ParseProduct extracts a vendor record from rendered product page HTML.
// Missing blocks yield a partial record; the mapper decides whether the
// result is importable.
func ParseProduct(html string) (*domain.VendorProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	product := &domain.VendorProduct{
		Name: strings.TrimSpace(doc.Find("h1").First().Text()),
		Type: "product",
	}

	if info := parseBasicInfo(doc); info != nil {
		product.BasicInfo = info
	}
	if options := parseDoorOptions(doc); len(options) > 0 {
		product.Specs = &domain.Specifications{DoorOptions: options}
	}

	return product, nil
}

// parseBasicInfo reads "Label: value" list items from the specification
// block.
func parseBasicInfo(doc *goquery.Document) *domain.BasicInfo {
	info := &domain.BasicInfo{}
	found := false

	doc.Find("li, dd, p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		label, value, ok := strings.Cut(text, ":")
		if !ok {
			return
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}

		switch strings.ToLower(strings.TrimSpace(label)) {
		case labelGlassThickness:
			info.GlassThickness = value
			found = true
		case labelHeight:
			info.Height = value
			found = true
		case labelGlassOptions:
			for _, option := range strings.Split(value, ",") {
				if option = strings.TrimSpace(option); option != "" {
					info.GlassOptions = append(info.GlassOptions, option)
				}
			}
			found = true
		}
	})

	if !found {
		return nil
	}
	return info
}

// parseDoorOptions reads the size table: one row per configuration with
// code, size and adjustment columns.
func parseDoorOptions(doc *goquery.Document) []domain.DoorOption {
	var options []domain.DoorOption

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		option := domain.DoorOption{
			Code: strings.TrimSpace(cells.Eq(0).Text()),
			Size: strings.TrimSpace(cells.Eq(1).Text()),
		}
		if cells.Length() > 2 {
			option.Adjustment = strings.TrimSpace(cells.Eq(2).Text())
		}
		if option.Code == "" || option.Size == "" {
			return
		}
		options = append(options, option)
	})

	return options
}
