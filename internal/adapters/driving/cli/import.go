package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/showroom-labs/vendorsync/internal/core/domain"
	"github.com/showroom-labs/vendorsync/internal/core/services"
)

var importCmd = &cobra.Command{
	Use:   "import <vendor>",
	Short: "Import a vendor catalogue into the record store",
	Long: `Imports the scraped catalogue of the given vendor. Records already
present in the store are skipped, so re-running an import is safe.
Progress is posted to the configured GitHub issue.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("report-dir", "", "Directory for the run report file")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	vendor, err := vendorProfile(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	service, cleanup, err := ensureImportService(ctx, vendor)
	if err != nil {
		return err
	}
	defer cleanup()

	if reportDir, _ := cmd.Flags().GetString("report-dir"); reportDir != "" {
		setReportDir(service, reportDir)
	}

	cmd.Printf("Importing %s catalogue from %s...\n", vendor.Name, vendor.DataDir)

	summary, err := service.Run(ctx, vendor)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}

// setReportDir applies the flag when the service is the concrete
// orchestrator. Fakes injected by tests ignore it.
func setReportDir(service any, dir string) {
	if orch, ok := service.(*services.Orchestrator); ok {
		orch.ReportDir = dir
	}
}

func printSummary(cmd *cobra.Command, summary *domain.RunSummary) {
	cmd.Printf("Run %s finished in %s\n", summary.RunID, summary.Duration().Round(time.Millisecond))
	cmd.Printf("  Total:   %d\n", summary.Total)
	cmd.Printf("  Created: %d\n", summary.Created)
	cmd.Printf("  Skipped: %d\n", summary.Skipped)
	cmd.Printf("  Failed:  %d\n", summary.Failed)

	for _, failure := range summary.Failures {
		cmd.Printf("  FAILED %s: %s\n", failure.Key, failure.Reason)
	}
}
