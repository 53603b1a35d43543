package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-labs/vendorsync/internal/adapters/driven/config/file"
	"github.com/showroom-labs/vendorsync/internal/core/domain"
)

// mockImportService implements driving.ImportOrchestrator for testing.
type mockImportService struct {
	summary    *domain.RunSummary
	result     *domain.ImportResult
	err        error
	lastVendor domain.Vendor
	lastPath   string
}

func (m *mockImportService) Run(_ context.Context, vendor domain.Vendor) (*domain.RunSummary, error) {
	m.lastVendor = vendor
	return m.summary, m.err
}

func (m *mockImportService) ImportFile(_ context.Context, vendor domain.Vendor, path string) (*domain.ImportResult, error) {
	m.lastVendor = vendor
	m.lastPath = path
	return m.result, m.err
}

func (m *mockImportService) Validate(_ context.Context, vendor domain.Vendor) (*domain.RunSummary, error) {
	m.lastVendor = vendor
	return m.summary, m.err
}

// setupCLITest injects a fake import service and a config store holding
// a flair profile, returning the mock and a cleanup func.
func setupCLITest(t *testing.T, summary *domain.RunSummary) (*mockImportService, func()) {
	t.Helper()

	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("vendors.flair.display_name", "FLAIR Showers"))
	require.NoError(t, store.Set("vendors.flair.data_dir", t.TempDir()))

	mock := &mockImportService{summary: summary}

	oldService, oldStore := importService, configStore
	importService, configStore = mock, store
	return mock, func() {
		importService, configStore = oldService, oldStore
		rootCmd.SetArgs(nil)
	}
}

func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func testSummary() *domain.RunSummary {
	now := time.Now()
	return &domain.RunSummary{
		RunID:      "run-1",
		Vendor:     "flair",
		Total:      10,
		Created:    7,
		Skipped:    2,
		Failed:     1,
		Failures:   []domain.ImportResult{{Key: "FL-BF-700", Reason: "remote operation failed"}},
		StartedAt:  now.Add(-time.Second),
		FinishedAt: now,
	}
}

func TestImportCmd_Use(t *testing.T) {
	assert.Equal(t, "import <vendor>", importCmd.Use)
}

func TestImportCmd_RunsVendorImport(t *testing.T) {
	mock, cleanup := setupCLITest(t, testSummary())
	defer cleanup()

	out, err := execute("import", "flair")

	require.NoError(t, err)
	assert.Equal(t, "flair", mock.lastVendor.Name)
	assert.Contains(t, out, "Created: 7")
	assert.Contains(t, out, "FAILED FL-BF-700")
}

func TestImportCmd_UnknownVendor(t *testing.T) {
	_, cleanup := setupCLITest(t, testSummary())
	defer cleanup()

	_, err := execute("import", "acme")

	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestImportCmd_RequiresVendorArg(t *testing.T) {
	_, cleanup := setupCLITest(t, testSummary())
	defer cleanup()

	_, err := execute("import")

	assert.Error(t, err)
}

func TestValidateCmd_ReportsRejects(t *testing.T) {
	summary := testSummary()
	summary.Failures[0].Reason = "required field missing: name"
	_, cleanup := setupCLITest(t, summary)
	defer cleanup()

	out, err := execute("validate", "flair")

	assert.Error(t, err)
	assert.Contains(t, out, "REJECTED FL-BF-700")
}

func TestValidateCmd_CleanCatalogue(t *testing.T) {
	summary := testSummary()
	summary.Failed = 0
	summary.Failures = nil
	_, cleanup := setupCLITest(t, summary)
	defer cleanup()

	out, err := execute("validate", "flair")

	require.NoError(t, err)
	assert.Contains(t, out, "Checked 10 records")
}
