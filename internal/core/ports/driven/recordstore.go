package driven

import "context"

// Record store model names used by the importer. These mirror the models
// exposed by the remote Odoo-like store.
const (
	ModelProductTemplate = "product.template"
	ModelProductVariant  = "product.product"
	ModelCategory        = "product.category"
	ModelAttribute       = "product.attribute"
	ModelAttributeValue  = "product.attribute.value"
)

// Condition is one term of a record store search filter.
// Op is the store's operator syntax ("=", "ilike", "in", ...).
type Condition struct {
	Field string
	Op    string
	Value any
}

// Eq builds an equality condition.
func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: "=", Value: value}
}

// RecordStore is the remote Odoo-like record store. All operations are
// remote calls with at-least-once semantics; callers get idempotence from
// existence checks, not from the store.
type RecordStore interface {
	// SearchRead searches a model and returns matching records with the
	// requested fields. A limit of 0 means the store's default.
	SearchRead(ctx context.Context, model string, filter []Condition, fields []string, limit int) ([]map[string]any, error)

	// Create inserts a record and returns its ID.
	Create(ctx context.Context, model string, values map[string]any) (int64, error)

	// Write updates fields on an existing record.
	Write(ctx context.Context, model string, id int64, values map[string]any) error

	// Unlink deletes records by ID.
	Unlink(ctx context.Context, model string, ids []int64) error

	// FieldsGet returns the field schema of a model.
	FieldsGet(ctx context.Context, model string) (map[string]any, error)
}
