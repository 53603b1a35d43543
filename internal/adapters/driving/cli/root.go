// Package cli implements the vendorsync command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/showroom-labs/vendorsync/internal/adapters/driven/config/file"
	"github.com/showroom-labs/vendorsync/internal/adapters/driven/github"
	"github.com/showroom-labs/vendorsync/internal/adapters/driven/mcpclient"
	"github.com/showroom-labs/vendorsync/internal/adapters/driven/odoomcp"
	"github.com/showroom-labs/vendorsync/internal/adapters/driven/puppeteer"
	"github.com/showroom-labs/vendorsync/internal/config"
	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driven"
	"github.com/showroom-labs/vendorsync/internal/core/ports/driving"
	"github.com/showroom-labs/vendorsync/internal/core/services"
	"github.com/showroom-labs/vendorsync/internal/loader"
	"github.com/showroom-labs/vendorsync/internal/logger"
	"github.com/showroom-labs/vendorsync/internal/mappers"
	"github.com/showroom-labs/vendorsync/internal/mappers/flair"
)

// version is set at build time via ldflags.
var version = "0.1.0"

// Injected collaborators. Production wiring happens lazily in the
// ensure* helpers; tests preset these with fakes.
var (
	importService driving.ImportOrchestrator
	scrapeService driving.ScrapeService
	configStore   *file.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "vendorsync",
	Short: "Import scraped vendor catalogues into a product record store",
	Long: `Vendorsync reads scraped vendor catalogue files, maps them to product
records and imports them idempotently into an Odoo-like record store
reached over MCP. Import progress is reported to a GitHub issue.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
}

// Execute runs the root command with the given context. Cancelling the
// context stops long-running commands like watch.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newRegistry lists every vendor mapper the binary ships.
func newRegistry() *mappers.Registry {
	registry := mappers.NewRegistry()
	registry.Register(flair.New())
	return registry
}

// ensureConfigStore opens the TOML config store on first use.
func ensureConfigStore() (*file.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}

	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config store: %w", err)
	}
	configStore = store
	return store, nil
}

// vendorProfile resolves the named vendor from the config store.
func vendorProfile(name string) (domain.Vendor, error) {
	store, err := ensureConfigStore()
	if err != nil {
		return domain.Vendor{}, err
	}
	return store.Vendor(name)
}

// ensureImportService wires the full import pipeline against the remote
// collaborators. The returned cleanup closes the record store session.
func ensureImportService(ctx context.Context, vendor domain.Vendor) (driving.ImportOrchestrator, func(), error) {
	if importService != nil {
		return importService, func() {}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	store, err := odoomcp.Connect(ctx, mcpclientOptions(cfg.Odoo.Endpoint, cfg.Odoo.Command, cfg.Odoo.ArgList()))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = store.Close() }

	var tracker driven.IssueTracker
	if cfg.GitHub.ReportingEnabled() {
		tracker, err = github.NewIssueTracker(ctx, cfg.GitHub.Token)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	} else {
		logger.Debug("Progress reporting disabled; set GITHUB_TOKEN, GITHUB_REPO and GITHUB_ISSUE to enable")
	}

	reporter := services.NewProgressReporter(tracker, cfg.GitHub.Repo, cfg.GitHub.Issue, vendor.ReportInterval)
	orchestrator := services.NewOrchestrator(loader.New(), newRegistry(), services.NewImporter(store), reporter)
	return orchestrator, cleanup, nil
}

// ensureScrapeService wires the scrape pipeline against the browser
// automation server.
func ensureScrapeService(ctx context.Context) (driving.ScrapeService, func(), error) {
	if scrapeService != nil {
		return scrapeService, func() {}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	browser, err := puppeteer.Connect(ctx, mcpclientOptions(cfg.Puppeteer.Endpoint, cfg.Puppeteer.Command, cfg.Puppeteer.ArgList()))
	if err != nil {
		return nil, nil, err
	}
	return services.NewScraper(browser), func() { _ = browser.Close() }, nil
}

func mcpclientOptions(endpoint, command string, args []string) mcpclient.Options {
	return mcpclient.Options{
		Endpoint: endpoint,
		Command:  command,
		Args:     args,
		Version:  version,
	}
}

// newLocalOrchestrator builds an orchestrator for offline operations.
// Validate never touches the remote collaborators.
func newLocalOrchestrator() driving.ImportOrchestrator {
	if importService != nil {
		return importService
	}
	reporter := services.NewProgressReporter(nil, "", 0, 0)
	return services.NewOrchestrator(loader.New(), newRegistry(), services.NewImporter(nil), reporter)
}
