package driven

import "context"

// BrowserAutomation drives a remote headless browser for scraping vendor
// sites. Backed by an MCP-wrapped Puppeteer server.
type BrowserAutomation interface {
	// Navigate loads a URL in the remote browser.
	Navigate(ctx context.Context, url string) error

	// Screenshot captures the element matching selector (or the full page
	// when selector is empty) and returns the image bytes.
	Screenshot(ctx context.Context, selector string) ([]byte, error)

	// FillForm types a value into the element matching selector.
	FillForm(ctx context.Context, selector, value string) error

	// Evaluate runs a JavaScript expression in the page and returns its
	// string result.
	Evaluate(ctx context.Context, script string) (string, error)
}
