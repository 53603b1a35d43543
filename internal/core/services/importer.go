package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
	"github.com/showroom-labs/vendorsync/internal/logger"
)

// ImageField is the record store field holding the full-size product image.
const ImageField = "image_1920"

// ImportOptions control per-run importer behavior.
type ImportOptions struct {
	// DataDir is where product images are looked up.
	DataDir string

	// ImportImages enables image upload after record creation.
	ImportImages bool

	// CreateVariants enables child variant creation.
	CreateVariants bool
}

// Importer creates vendor products in the remote record store, skipping
// records whose natural key already exists. The existence check is what
// gives idempotence; the store itself only promises at-least-once calls.
type Importer struct {
	store driven.RecordStore

	// Per-run caches of remote IDs. Populated by EnsureCategories and
	// EnsureAttributes, extended lazily during imports.
	rootCategoryID int64
	categories     map[string]int64
	attributes     map[string]int64
	attrValues     map[string]map[string]int64
}

// NewImporter creates an importer backed by the given record store.
func NewImporter(store driven.RecordStore) *Importer {
	return &Importer{
		store:      store,
		categories: make(map[string]int64),
		attributes: make(map[string]int64),
		attrValues: make(map[string]map[string]int64),
	}
}

// EnsureCategories gets or creates the vendor root category and each
// subcategory beneath it, caching the IDs for the run.
func (im *Importer) EnsureCategories(ctx context.Context, root string, names []string) error {
	rootID, err := im.getOrCreateCategory(ctx, root, 0)
	if err != nil {
		return fmt.Errorf("ensure root category %q: %w", root, err)
	}
	im.rootCategoryID = rootID

	for _, name := range names {
		id, err := im.getOrCreateCategory(ctx, name, rootID)
		if err != nil {
			return fmt.Errorf("ensure category %q: %w", name, err)
		}
		im.categories[name] = id
		logger.Debug("Category %q ready with ID %d", name, id)
	}
	return nil
}

// EnsureAttributes creates the product attributes with predefined values.
// Attributes whose value list is nil are created lazily from the records.
func (im *Importer) EnsureAttributes(ctx context.Context, attrs map[string][]string) error {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := attrs[name]
		if len(values) == 0 {
			continue
		}
		attrID, err := im.ensureAttribute(ctx, name)
		if err != nil {
			return fmt.Errorf("ensure attribute %q: %w", name, err)
		}
		for _, value := range values {
			if _, err := im.ensureAttributeValue(ctx, name, attrID, value); err != nil {
				return fmt.Errorf("ensure attribute value %q=%q: %w", name, value, err)
			}
		}
	}
	return nil
}

// Import creates one mapped product. It never returns an error: every
// outcome is an ImportResult so a single record can never abort a batch.
func (im *Importer) Import(ctx context.Context, product *domain.MappedProduct, opts ImportOptions) domain.ImportResult {
	result := domain.ImportResult{
		Key:  product.NaturalKey(),
		Name: product.Name,
	}

	// Existence check first: this is the idempotence contract.
	existingID, err := im.findExisting(ctx, product)
	if err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Reason = fmt.Sprintf("existence check: %v", err)
		return result
	}
	if existingID != 0 {
		logger.Info("Product already exists: %s (ID %d)", product.Name, existingID)
		result.Outcome = domain.OutcomeSkipped
		result.RecordID = existingID
		return result
	}

	templateID, err := im.store.Create(ctx, driven.ModelProductTemplate, im.templateValues(product))
	if err != nil {
		result.Outcome = domain.OutcomeFailed
		result.Reason = fmt.Sprintf("create: %v", err)
		return result
	}
	logger.Info("Created product: %s (ID %d)", product.Name, templateID)
	result.RecordID = templateID

	if opts.CreateVariants {
		if err := im.createVariants(ctx, templateID, product); err != nil {
			result.Outcome = domain.OutcomeFailed
			result.Reason = fmt.Sprintf("create variants: %v", err)
			return result
		}
	}

	// Image upload is best effort: a missing or rejected image is a note
	// on an otherwise created record, never a failure.
	if opts.ImportImages && product.ImageFile != "" {
		if note := im.uploadImage(ctx, templateID, opts.DataDir, product.ImageFile); note != "" {
			result.Notes = append(result.Notes, note)
		}
	}

	result.Outcome = domain.OutcomeCreated
	return result
}

// findExisting searches the store by natural key: SKU first, then exact
// name. Returns 0 when no record matches.
func (im *Importer) findExisting(ctx context.Context, product *domain.MappedProduct) (int64, error) {
	fields := []string{"id", "name", "default_code"}

	if product.DefaultCode != "" {
		records, err := im.store.SearchRead(ctx, driven.ModelProductTemplate,
			[]driven.Condition{driven.Eq("default_code", product.DefaultCode)}, fields, 1)
		if err != nil {
			return 0, err
		}
		if len(records) > 0 {
			return recordID(records[0])
		}
	}

	records, err := im.store.SearchRead(ctx, driven.ModelProductTemplate,
		[]driven.Condition{driven.Eq("name", product.Name)}, fields, 1)
	if err != nil {
		return 0, err
	}
	if len(records) > 0 {
		return recordID(records[0])
	}
	return 0, nil
}

// templateValues builds the create payload, applying the store defaults
// every imported product gets.
func (im *Importer) templateValues(product *domain.MappedProduct) map[string]any {
	values := map[string]any{
		"name":           product.Name,
		"type":           product.Type,
		"sale_ok":        true,
		"purchase_ok":    false,
		"active":         true,
		"list_price":     product.ListPrice,
		"standard_price": product.StandardPrice,
		"categ_id":       im.categoryID(product.Category),
	}
	if product.DefaultCode != "" {
		values["default_code"] = product.DefaultCode
	}
	if product.Description != "" {
		values["description_sale"] = product.Description
	}
	for field, value := range product.CustomFields {
		values[field] = value
	}
	return values
}

// categoryID resolves a category name from the run cache, falling back to
// the vendor root category for unknown names.
func (im *Importer) categoryID(name string) int64 {
	if id, ok := im.categories[name]; ok {
		return id
	}
	return im.rootCategoryID
}

// createVariants creates one child variant per VariantSpec.
func (im *Importer) createVariants(ctx context.Context, templateID int64, product *domain.MappedProduct) error {
	for _, spec := range product.Variants {
		// Attribute order must be stable so re-runs issue identical calls.
		attrs := make([]string, 0, len(spec.Attributes))
		for attr := range spec.Attributes {
			attrs = append(attrs, attr)
		}
		sort.Strings(attrs)

		valueIDs := make([]int64, 0, len(attrs))
		for _, attr := range attrs {
			attrID, err := im.ensureAttribute(ctx, attr)
			if err != nil {
				return err
			}
			valueID, err := im.ensureAttributeValue(ctx, attr, attrID, spec.Attributes[attr])
			if err != nil {
				return err
			}
			valueIDs = append(valueIDs, valueID)
		}

		values := map[string]any{
			"product_tmpl_id":     templateID,
			"attribute_value_ids": valueIDs,
		}
		if spec.PriceExtra != 0 {
			values["price_extra"] = spec.PriceExtra
		}
		if product.DefaultCode != "" && spec.CodeSuffix != "" {
			values["default_code"] = product.DefaultCode + "-" + spec.CodeSuffix
		}

		if _, err := im.store.Create(ctx, driven.ModelProductVariant, values); err != nil {
			return err
		}
	}

	if len(product.Variants) > 0 {
		logger.Debug("Created %d variants for template %d", len(product.Variants), templateID)
	}
	return nil
}

// uploadImage reads the conventional image file and writes it base64 into
// the image field. Returns a note describing any problem, empty on success
// or when no image file exists.
func (im *Importer) uploadImage(ctx context.Context, templateID int64, dataDir, imageFile string) string {
	path := filepath.Join(dataDir, imageFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No image file %s", path)
			return ""
		}
		return fmt.Sprintf("read image %s: %v", imageFile, err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	if err := im.store.Write(ctx, driven.ModelProductTemplate, templateID,
		map[string]any{ImageField: encoded}); err != nil {
		logger.Warn("Image upload failed for %s: %v", imageFile, err)
		return fmt.Sprintf("image upload failed: %v", err)
	}

	logger.Info("Uploaded image for product %d", templateID)
	return ""
}

// ensureAttribute gets or creates a product attribute by name.
func (im *Importer) ensureAttribute(ctx context.Context, name string) (int64, error) {
	if id, ok := im.attributes[name]; ok {
		return id, nil
	}

	records, err := im.store.SearchRead(ctx, driven.ModelAttribute,
		[]driven.Condition{driven.Eq("name", name)}, []string{"id"}, 1)
	if err != nil {
		return 0, err
	}

	var id int64
	if len(records) > 0 {
		id, err = recordID(records[0])
		if err != nil {
			return 0, err
		}
	} else {
		id, err = im.store.Create(ctx, driven.ModelAttribute, map[string]any{
			"name":           name,
			"create_variant": "always",
		})
		if err != nil {
			return 0, err
		}
		logger.Debug("Created attribute %q (ID %d)", name, id)
	}

	im.attributes[name] = id
	return id, nil
}

// ensureAttributeValue gets or creates a value under an attribute.
func (im *Importer) ensureAttributeValue(ctx context.Context, attr string, attrID int64, value string) (int64, error) {
	if values, ok := im.attrValues[attr]; ok {
		if id, ok := values[value]; ok {
			return id, nil
		}
	}

	records, err := im.store.SearchRead(ctx, driven.ModelAttributeValue,
		[]driven.Condition{
			driven.Eq("attribute_id", attrID),
			driven.Eq("name", value),
		}, []string{"id"}, 1)
	if err != nil {
		return 0, err
	}

	var id int64
	if len(records) > 0 {
		id, err = recordID(records[0])
		if err != nil {
			return 0, err
		}
	} else {
		id, err = im.store.Create(ctx, driven.ModelAttributeValue, map[string]any{
			"name":         value,
			"attribute_id": attrID,
		})
		if err != nil {
			return 0, err
		}
	}

	if im.attrValues[attr] == nil {
		im.attrValues[attr] = make(map[string]int64)
	}
	im.attrValues[attr][value] = id
	return id, nil
}

// getOrCreateCategory searches for a category by name (and parent when
// non-zero), creating it when absent.
func (im *Importer) getOrCreateCategory(ctx context.Context, name string, parentID int64) (int64, error) {
	filter := []driven.Condition{driven.Eq("name", name)}
	if parentID != 0 {
		filter = append(filter, driven.Eq("parent_id", parentID))
	}

	records, err := im.store.SearchRead(ctx, driven.ModelCategory, filter, []string{"id"}, 1)
	if err != nil {
		return 0, err
	}
	if len(records) > 0 {
		return recordID(records[0])
	}

	values := map[string]any{"name": name}
	if parentID != 0 {
		values["parent_id"] = parentID
	}
	return im.store.Create(ctx, driven.ModelCategory, values)
}

// recordID extracts the "id" field from a search result record.
// Stores decode JSON numbers differently, so accept the common shapes.
func recordID(record map[string]any) (int64, error) {
	switch id := record["id"].(type) {
	case int64:
		return id, nil
	case int:
		return int64(id), nil
	case float64:
		return int64(id), nil
	default:
		return 0, fmt.Errorf("%w: record has no usable id: %v", domain.ErrRemoteOperation, record["id"])
	}
}
