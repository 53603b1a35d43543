// Package domain contains the core types for vendor catalogue imports:
// raw vendor products, their mapped Odoo-ready form, variant specifications
// and per-record import outcomes. Types here have no dependencies on
// adapters or external services.
package domain
