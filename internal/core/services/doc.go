// Package services contains the core import pipeline: the idempotent
// importer, the progress reporter, the scrape service and the orchestrator
// that sequences them. Services depend only on domain types and ports,
// never on concrete adapters.
package services
