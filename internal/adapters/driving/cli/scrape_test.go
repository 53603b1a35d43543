package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
)

// mockScrapeService implements driving.ScrapeService for testing.
type mockScrapeService struct {
	written  int
	err      error
	lastURLs []string
}

func (m *mockScrapeService) Scrape(_ context.Context, _ domain.Vendor, urls []string) (int, error) {
	m.lastURLs = urls
	return m.written, m.err
}

func setupScrapeTest(t *testing.T) (*mockScrapeService, func()) {
	t.Helper()

	_, cliCleanup := setupCLITest(t, testSummary())

	mock := &mockScrapeService{written: 2}
	oldScrape := scrapeService
	scrapeService = mock
	return mock, func() {
		scrapeService = oldScrape
		// Flag values persist on the package-level command between tests.
		_ = scrapeCmd.Flags().Set("urls-file", "")
		cliCleanup()
	}
}

func TestScrapeCmd_Use(t *testing.T) {
	assert.Equal(t, "scrape <vendor> [url...]", scrapeCmd.Use)
}

func TestScrapeCmd_ScrapesArgs(t *testing.T) {
	mock, cleanup := setupScrapeTest(t)
	defer cleanup()

	out, err := execute("scrape", "flair",
		"https://vendor.example/bifold", "https://vendor.example/slider")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://vendor.example/bifold",
		"https://vendor.example/slider",
	}, mock.lastURLs)
	assert.Contains(t, out, "Scraped 2 of 2 pages")
}

func TestScrapeCmd_ReadsURLsFile(t *testing.T) {
	mock, cleanup := setupScrapeTest(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# bifold range\nhttps://vendor.example/bifold\n\nhttps://vendor.example/slider\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := execute("scrape", "flair", "--urls-file", path)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://vendor.example/bifold",
		"https://vendor.example/slider",
	}, mock.lastURLs)
}

func TestScrapeCmd_NoURLs(t *testing.T) {
	_, cleanup := setupScrapeTest(t)
	defer cleanup()

	_, err := execute("scrape", "flair")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no URLs")
}
