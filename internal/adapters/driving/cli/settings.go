package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure vendor profiles and other settings stored in the
config file. Remote endpoints and credentials come from the
environment, not from here.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value by dotted key, for example:

  vendorsync settings set vendors.flair.data_dir /data/flair
  vendorsync settings set vendors.flair.create_variants true
  vendorsync settings set vendors.flair.batch_size 10`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsVendorsCmd = &cobra.Command{
	Use:   "vendors",
	Short: "List configured vendor profiles",
	RunE:  runSettingsVendors,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsVendorsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n", store.Path())

	vendors := store.Vendors()
	if len(vendors) == 0 {
		cmd.Println("No vendor profiles configured.")
		return nil
	}

	for _, name := range vendors {
		vendor, err := store.Vendor(name)
		if err != nil {
			return err
		}
		cmd.Printf("\n[%s]\n", name)
		cmd.Printf("  display_name:    %s\n", vendor.DisplayName)
		cmd.Printf("  data_dir:        %s\n", vendor.DataDir)
		cmd.Printf("  categories:      %v\n", vendor.Categories)
		cmd.Printf("  batch_size:      %d\n", vendor.BatchSize)
		cmd.Printf("  report_interval: %d\n", vendor.ReportInterval)
		cmd.Printf("  import_images:   %t\n", vendor.ImportImages)
		cmd.Printf("  create_variants: %t\n", vendor.CreateVariants)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := store.Set(key, coerce(value)); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

func runSettingsVendors(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfigStore()
	if err != nil {
		return err
	}

	vendors := store.Vendors()
	if len(vendors) == 0 {
		cmd.Println("No vendor profiles configured.")
		return nil
	}
	for _, name := range vendors {
		cmd.Println(name)
	}
	return nil
}

// coerce turns CLI strings into the natural TOML type.
func coerce(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	return value
}
