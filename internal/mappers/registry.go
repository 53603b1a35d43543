// Package mappers holds the per-vendor field mappers and their registry.
// Each vendor's mapping table lives in its own subpackage; the registry
// resolves a vendor name to its mapper at run time.
package mappers

import (
	"fmt"
	"sort"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
)

// Registry maps vendor names to their field mappers.
type Registry struct {
	mappers map[string]driven.FieldMapper
}

// NewRegistry creates an empty mapper registry.
func NewRegistry() *Registry {
	return &Registry{
		mappers: make(map[string]driven.FieldMapper),
	}
}

// Register adds a mapper. The key is the mapper's Vendor() value.
func (r *Registry) Register(m driven.FieldMapper) {
	r.mappers[m.Vendor()] = m
}

// Get resolves a vendor name to its mapper.
func (r *Registry) Get(vendor string) (driven.FieldMapper, error) {
	m, ok := r.mappers[vendor]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownVendor, vendor)
	}
	return m, nil
}

// Has returns true if a mapper is registered for the vendor.
func (r *Registry) Has(vendor string) bool {
	_, ok := r.mappers[vendor]
	return ok
}

// Names returns all registered vendor names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.mappers))
	for name := range r.mappers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
