package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom-labs/vendorsync/internal/adapters/driven/memory"
	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

func mappedBifold() *domain.MappedProduct {
	return &domain.MappedProduct{
		Name:        "FLAIR Bifold Door",
		Type:        "product",
		Category:    "Bifold Doors",
		DefaultCode: "FL-BF-700",
		Description: "A bifold door",
		CustomFields: map[string]any{
			"x_vendor": "FLAIR",
		},
		Variants: []domain.VariantSpec{
			{Attributes: map[string]string{"Size": "700mm"}, CodeSuffix: "700MM"},
			{Attributes: map[string]string{"Size": "800mm"}, CodeSuffix: "800MM"},
		},
	}
}

func TestImport_CreatesTemplateAndVariants(t *testing.T) {
	store := memory.NewRecordStore()
	importer := NewImporter(store)
	ctx := context.Background()

	result := importer.Import(ctx, mappedBifold(), ImportOptions{CreateVariants: true})

	assert.Equal(t, domain.OutcomeCreated, result.Outcome)
	assert.NotZero(t, result.RecordID)
	assert.Equal(t, 1, store.Count(driven.ModelProductTemplate))
	assert.Equal(t, 2, store.Count(driven.ModelProductVariant))

	record := store.Get(driven.ModelProductTemplate, result.RecordID)
	require.NotNil(t, record)
	assert.Equal(t, "FL-BF-700", record["default_code"])
	assert.Equal(t, true, record["sale_ok"])
	assert.Equal(t, false, record["purchase_ok"])
	assert.Equal(t, "FLAIR", record["x_vendor"])
}

func TestImport_SecondRunSkips(t *testing.T) {
	store := memory.NewRecordStore()
	importer := NewImporter(store)
	ctx := context.Background()

	first := importer.Import(ctx, mappedBifold(), ImportOptions{})
	require.Equal(t, domain.OutcomeCreated, first.Outcome)
	creates := store.CreateCalls[driven.ModelProductTemplate]

	second := importer.Import(ctx, mappedBifold(), ImportOptions{})

	assert.Equal(t, domain.OutcomeSkipped, second.Outcome)
	assert.Equal(t, first.RecordID, second.RecordID)
	// The existence check must prevent any further create call.
	assert.Equal(t, creates, store.CreateCalls[driven.ModelProductTemplate])
}

func TestImport_SkipsByNameWhenNoCode(t *testing.T) {
	store := memory.NewRecordStore()
	importer := NewImporter(store)
	ctx := context.Background()

	product := mappedBifold()
	product.DefaultCode = ""
	require.Equal(t, domain.OutcomeCreated, importer.Import(ctx, product, ImportOptions{}).Outcome)

	second := importer.Import(ctx, product, ImportOptions{})

	assert.Equal(t, domain.OutcomeSkipped, second.Outcome)
}

func TestImport_RemoteFailureRecorded(t *testing.T) {
	store := memory.NewRecordStore()
	store.FailCreate[driven.ModelProductTemplate] = errors.New("connection reset")
	importer := NewImporter(store)

	result := importer.Import(context.Background(), mappedBifold(), ImportOptions{})

	assert.Equal(t, domain.OutcomeFailed, result.Outcome)
	assert.Contains(t, result.Reason, "connection reset")
}

func TestImport_VariantFailureRecorded(t *testing.T) {
	store := memory.NewRecordStore()
	store.FailCreate[driven.ModelProductVariant] = errors.New("bad variant")
	importer := NewImporter(store)

	result := importer.Import(context.Background(), mappedBifold(), ImportOptions{CreateVariants: true})

	assert.Equal(t, domain.OutcomeFailed, result.Outcome)
	assert.Contains(t, result.Reason, "create variants")
}

func TestImport_ImageUploaded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flair_bifold_door.png"), []byte("png-bytes"), 0600))

	store := memory.NewRecordStore()
	importer := NewImporter(store)

	product := mappedBifold()
	product.ImageFile = "flair_bifold_door.png"
	result := importer.Import(context.Background(), product, ImportOptions{DataDir: dir, ImportImages: true})

	require.Equal(t, domain.OutcomeCreated, result.Outcome)
	assert.Empty(t, result.Notes)
	record := store.Get(driven.ModelProductTemplate, result.RecordID)
	assert.NotEmpty(t, record[ImageField])
}

func TestImport_MissingImageIsNotAFailure(t *testing.T) {
	store := memory.NewRecordStore()
	importer := NewImporter(store)

	product := mappedBifold()
	product.ImageFile = "flair_bifold_door.png"
	result := importer.Import(context.Background(), product, ImportOptions{DataDir: t.TempDir(), ImportImages: true})

	assert.Equal(t, domain.OutcomeCreated, result.Outcome)
	assert.Empty(t, result.Notes)
}

func TestEnsureCategories_GetOrCreate(t *testing.T) {
	store := memory.NewRecordStore()
	importer := NewImporter(store)
	ctx := context.Background()

	require.NoError(t, importer.EnsureCategories(ctx, "FLAIR Showers", []string{"Bifold Doors", "Sliding Doors"}))
	created := store.CreateCalls[driven.ModelCategory]
	assert.Equal(t, 3, created)

	// Re-running finds everything and creates nothing new.
	fresh := NewImporter(store)
	require.NoError(t, fresh.EnsureCategories(ctx, "FLAIR Showers", []string{"Bifold Doors", "Sliding Doors"}))
	assert.Equal(t, created, store.CreateCalls[driven.ModelCategory])
}

func TestEnsureAttributes_PredefinedValues(t *testing.T) {
	store := memory.NewRecordStore()
	importer := NewImporter(store)
	ctx := context.Background()

	attrs := map[string][]string{
		"Size":       nil, // lazy, from records
		"Glass Type": {"Clear Glass", "Matte Black Glass"},
	}
	require.NoError(t, importer.EnsureAttributes(ctx, attrs))

	assert.Equal(t, 1, store.Count(driven.ModelAttribute))
	assert.Equal(t, 2, store.Count(driven.ModelAttributeValue))
}
