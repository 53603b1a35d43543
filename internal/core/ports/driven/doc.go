// Package driven defines the interfaces the core depends on: the remote
// record store, the issue tracker, browser automation, catalogue sources,
// field mappers and configuration. Adapters implement these interfaces.
package driven
