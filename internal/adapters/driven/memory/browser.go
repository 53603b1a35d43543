package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

// Ensure Browser implements the interface.
var _ driven.BrowserAutomation = (*Browser)(nil)

// Browser is an in-memory implementation of driven.BrowserAutomation
// serving canned pages keyed by URL.
type Browser struct {
	mu      sync.Mutex
	pages   map[string]string
	current string

	// Image is returned by Screenshot.
	Image []byte

	// Err, when set, is returned by every operation.
	Err error
}

// NewBrowser creates a browser with the given URL -> HTML pages.
func NewBrowser(pages map[string]string) *Browser {
	if pages == nil {
		pages = make(map[string]string)
	}
	return &Browser{pages: pages}
}

// Navigate selects the current page.
func (b *Browser) Navigate(_ context.Context, url string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return b.Err
	}
	if _, ok := b.pages[url]; !ok {
		return fmt.Errorf("%w: page %s", domain.ErrNotFound, url)
	}
	b.current = url
	return nil
}

// Screenshot returns the configured image bytes.
func (b *Browser) Screenshot(_ context.Context, _ string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return b.Image, nil
}

// FillForm is accepted and discarded.
func (b *Browser) FillForm(_ context.Context, _, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Err
}

// Evaluate returns the current page markup for the HTML script, and an
// empty string for anything else.
func (b *Browser) Evaluate(_ context.Context, _ string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Err != nil {
		return "", b.Err
	}
	return b.pages[b.current], nil
}
