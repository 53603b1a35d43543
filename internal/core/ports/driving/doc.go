// Package driving defines the interfaces through which the CLI drives the
// core: running imports, validating catalogues and scraping vendor sites.
package driving
