// Package odoomcp implements the record store port against an MCP server
// exposing Odoo ORM tools (search_read, create, write, unlink,
// fields_get). Tool results are object-shaped JSON: search_read returns
// {"records": [...]}, create returns {"id": N}, fields_get returns
// {"fields": {...}}.
package odoomcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/showroom-labs/vendorsync/internal/adapters/driven/mcpclient"
	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

// Tool names exposed by the record store server.
const (
	toolSearchRead = "search_read"
	toolCreate     = "create"
	toolWrite      = "write"
	toolUnlink     = "unlink"
	toolFieldsGet  = "fields_get"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is the MCP-backed implementation of driven.RecordStore.
type RecordStore struct {
	session *mcp.ClientSession
}

// Connect dials the record store server and verifies the session.
func Connect(ctx context.Context, opts mcpclient.Options) (*RecordStore, error) {
	session, err := mcpclient.Dial(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("record store: %w", err)
	}
	return NewRecordStore(session), nil
}

// NewRecordStore wraps an established session.
func NewRecordStore(session *mcp.ClientSession) *RecordStore {
	return &RecordStore{session: session}
}

// Close ends the session.
func (s *RecordStore) Close() error {
	return s.session.Close()
}

// SearchRead searches a model and returns matching records.
func (s *RecordStore) SearchRead(ctx context.Context, model string, filter []driven.Condition, fields []string, limit int) ([]map[string]any, error) {
	args := map[string]any{
		"model":  model,
		"domain": conditions(filter),
	}
	if len(fields) > 0 {
		args["fields"] = fields
	}
	if limit > 0 {
		args["limit"] = limit
	}

	var out struct {
		Records []map[string]any `json:"records"`
	}
	if err := mcpclient.CallTool(ctx, s.session, toolSearchRead, args, &out); err != nil {
		return nil, err
	}
	return out.Records, nil
}

// Create inserts a record and returns its ID.
func (s *RecordStore) Create(ctx context.Context, model string, values map[string]any) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	err := mcpclient.CallTool(ctx, s.session, toolCreate, map[string]any{
		"model":  model,
		"values": values,
	}, &out)
	if err != nil {
		return 0, err
	}
	if out.ID == 0 {
		return 0, fmt.Errorf("%w: create %s returned no id", domain.ErrRemoteOperation, model)
	}
	return out.ID, nil
}

// Write updates fields on an existing record.
func (s *RecordStore) Write(ctx context.Context, model string, id int64, values map[string]any) error {
	return mcpclient.CallTool(ctx, s.session, toolWrite, map[string]any{
		"model":  model,
		"ids":    []int64{id},
		"values": values,
	}, nil)
}

// Unlink deletes records by ID.
func (s *RecordStore) Unlink(ctx context.Context, model string, ids []int64) error {
	return mcpclient.CallTool(ctx, s.session, toolUnlink, map[string]any{
		"model": model,
		"ids":   ids,
	}, nil)
}

// FieldsGet returns the field schema of a model.
func (s *RecordStore) FieldsGet(ctx context.Context, model string) (map[string]any, error) {
	var out struct {
		Fields map[string]any `json:"fields"`
	}
	err := mcpclient.CallTool(ctx, s.session, toolFieldsGet, map[string]any{
		"model": model,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Fields, nil
}

// conditions flattens filter terms into the store's triplet syntax.
func conditions(filter []driven.Condition) [][]any {
	terms := make([][]any, len(filter))
	for i, c := range filter {
		terms[i] = []any{c.Field, c.Op, c.Value}
	}
	return terms
}
