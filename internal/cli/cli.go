// Package cli implements the per-game scraper commands. Both scraper
// binaries are the same command wired to a different source.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/gacha-events/internal/event"
	"github.com/pfrederiksen/gacha-events/internal/logger"
	"github.com/pfrederiksen/gacha-events/internal/scraper"
	"github.com/pfrederiksen/gacha-events/internal/storage"
	"github.com/pfrederiksen/gacha-events/internal/telegram"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagDataDir string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the scrape command for one source.
func NewRootCmd(source scraper.Source) *cobra.Command {
	cmd := &cobra.Command{
		Use:   source.Name + "-events",
		Short: fmt.Sprintf("Scrape current %s events from the wiki", telegram.GameTitle(source.Name)),
		Long: fmt.Sprintf(`Scrapes the current in-game events from the %s wiki,
extracting names, dates, types, and rewards, and writes them to %s
in the data directory.`, telegram.GameTitle(source.Name), source.OutputFile),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(source)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&flagDataDir, "data-dir", ".", "Directory for the events snapshot")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

func runScrape(source scraper.Source) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	} else {
		logger.SetDefault(logger.New(logger.LevelWarn, os.Stderr))
	}

	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	sc := scraper.New(source)
	records, err := sc.Run()
	if err := persistScrape(store, source, records, err); err != nil {
		return err
	}

	return WriteOutput(os.Stdout, source.Name, records, format)
}

// persistScrape saves the scrape result and maps the scrape error to the
// command's exit behavior. A missing current-events section still writes
// the empty snapshot, so stale events stop being republished, but the run
// fails: total extraction failure exits non-zero.
func persistScrape(store *storage.Storage, source scraper.Source, records []*event.Record, scrapeErr error) error {
	if scrapeErr != nil && !errors.Is(scrapeErr, scraper.ErrNoCurrentSection) {
		return fmt.Errorf("scraping events: %w", scrapeErr)
	}

	if err := store.SaveEvents(source.OutputFile, records); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	if scrapeErr != nil {
		return fmt.Errorf("scraping events: %w (wrote empty snapshot)", scrapeErr)
	}
	return nil
}

// Execute runs the command for the given source.
func Execute(source scraper.Source) {
	if err := NewRootCmd(source).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
