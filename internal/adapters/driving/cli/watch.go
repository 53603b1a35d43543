package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/showroom-labs/vendorsync/internal/logger"
	"github.com/showroom-labs/vendorsync/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch <vendor>",
	Short: "Watch the data directory and import new catalogue files",
	Long: `Watches the vendor's data directory and imports each catalogue file
as it appears. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	handler := func(ctx context.Context, path string) {
		result, err := service.ImportFile(ctx, vendor, path)
		if err != nil {
			logger.Warn("Import of %s failed: %v", path, err)
			return
		}
		cmd.Printf("%s: %s (%s)\n", result.Outcome, result.Name, path)
	}

	cmd.Printf("Watching %s for %s catalogue files. Ctrl-C to stop.\n", vendor.DataDir, vendor.Name)

	err = watcher.New().Watch(ctx, vendor.DataDir, handler)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
