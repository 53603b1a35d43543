package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <vendor>",
	Short: "Check a vendor catalogue without importing",
	Long: `Loads and maps the vendor's catalogue files, reporting records that
would be rejected. No remote calls are made.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	vendor, err := vendorProfile(args[0])
	if err != nil {
		return err
	}

	summary, err := newLocalOrchestrator().Validate(cmd.Context(), vendor)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	cmd.Printf("Checked %d records: %d mappable, %d rejected\n",
		summary.Total, summary.Total-summary.Failed, summary.Failed)
	for _, failure := range summary.Failures {
		cmd.Printf("  REJECTED %s: %s\n", failure.Key, failure.Reason)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d records would be rejected", summary.Failed)
	}
	return nil
}
