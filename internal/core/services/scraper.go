package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driving"
	"github.com/showroom-labs/vendorsync/internal/logger"
	"github.com/showroom-labs/vendorsync/internal/scrape"
)

// Ensure Scraper implements the interface.
var _ driving.ScrapeService = (*Scraper)(nil)

// Scraper fetches vendor product pages through the remote browser and
// writes catalogue JSON files into the vendor data directory, where the
// loader picks them up.
type Scraper struct {
	browser driven.BrowserAutomation
}

// NewScraper creates a scrape service over the given browser.
func NewScraper(browser driven.BrowserAutomation) *Scraper {
	return &Scraper{browser: browser}
}

// Scrape fetches each URL and writes one product file per page. A failed
// page is logged and skipped; only configuration problems abort the run.
func (s *Scraper) Scrape(ctx context.Context, vendor domain.Vendor, urls []string) (int, error) {
	if err := vendor.Validate(); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(vendor.DataDir, 0700); err != nil {
		return 0, fmt.Errorf("%w: create %s: %v", domain.ErrConfiguration, vendor.DataDir, err)
	}

	written := 0
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		if err := s.scrapeOne(ctx, vendor, url); err != nil {
			logger.Warn("Scrape failed for %s: %v", url, err)
			continue
		}
		written++
	}

	logger.Info("Scraped %d of %d pages into %s", written, len(urls), vendor.DataDir)
	return written, nil
}

// scrapeOne fetches, parses and persists a single product page.
func (s *Scraper) scrapeOne(ctx context.Context, vendor domain.Vendor, url string) error {
	if err := s.browser.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}

	html, err := s.browser.Evaluate(ctx, scrape.PageHTMLScript)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	product, err := scrape.ParseProduct(html)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if product.Name == "" {
		return fmt.Errorf("%w: page has no product name", domain.ErrInvalidInput)
	}
	product.URL = url

	slug := domain.ImageSlug(product.Name)
	data, err := json.MarshalIndent(product, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	path := filepath.Join(vendor.DataDir, slug+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Debug("Wrote %s", path)

	// Product screenshot is best effort; imports work without it.
	if vendor.ImportImages {
		image, err := s.browser.Screenshot(ctx, "")
		if err != nil {
			logger.Warn("Screenshot failed for %s: %v", url, err)
			return nil
		}
		imagePath := filepath.Join(vendor.DataDir, slug+".png")
		if err := os.WriteFile(imagePath, image, 0600); err != nil {
			logger.Warn("Could not save %s: %v", imagePath, err)
		}
	}

	return nil
}
