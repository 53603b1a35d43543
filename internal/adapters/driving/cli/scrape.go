package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <vendor> [url...]",
	Short: "Scrape vendor product pages into the data directory",
	Long: `Fetches product pages through the browser automation server and
writes one catalogue JSON file per page into the vendor's data
directory. URLs are given as arguments or read from a file with
--urls-file, one per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().String("urls-file", "", "File with product page URLs, one per line")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	vendor, err := vendorProfile(args[0])
	if err != nil {
		return err
	}

	urls := args[1:]
	if urlsFile, _ := cmd.Flags().GetString("urls-file"); urlsFile != "" {
		fromFile, err := readURLs(urlsFile)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given; pass them as arguments or with --urls-file")
	}

	ctx := cmd.Context()
	service, cleanup, err := ensureScrapeService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	written, err := service.Scrape(ctx, vendor, urls)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	cmd.Printf("Scraped %d of %d pages into %s\n", written, len(urls), vendor.DataDir)
	return nil
}

// readURLs loads one URL per line, skipping blanks and # comments.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading urls file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
