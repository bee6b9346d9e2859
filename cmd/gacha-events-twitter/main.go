// Command gacha-events-twitter tweets alerts for events that are about
// to end. Credentials come from TWITTER_* environment variables or a
// .env file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/gacha-events/internal/config"
	"github.com/pfrederiksen/gacha-events/internal/event"
	"github.com/pfrederiksen/gacha-events/internal/notifier"
	"github.com/pfrederiksen/gacha-events/internal/storage"
)

var (
	configPath = flag.String("config", "", "Path to YAML config file")
	game       = flag.String("game", "all", "Game to tweet about: genshin, waves, or all")
	dryRun     = flag.Bool("dry-run", false, "Print tweets without posting")
	maxTweets  = flag.Int("max-tweets", 10, "Maximum number of tweets to post (0 for no limit)")
)

var gameFiles = map[string]string{
	"genshin": "genshin_events.json",
	"waves":   "waves_events.json",
}

const unlimitedBudget = -1

// applyBudget truncates records to the remaining tweet budget and returns
// the budget left over. An unlimitedBudget remaining passes everything
// through unchanged.
func applyBudget(records []*event.Record, remaining int) ([]*event.Record, int) {
	if remaining == unlimitedBudget {
		return records, remaining
	}
	if len(records) > remaining {
		records = records[:remaining]
	}
	return records, remaining - len(records)
}

func main() {
	_ = godotenv.Load()
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var games []string
	switch *game {
	case "all":
		games = []string{"genshin", "waves"}
	case "genshin", "waves":
		games = []string{*game}
	default:
		fmt.Fprintf(os.Stderr, "Unknown game %q: use genshin, waves, or all\n", *game)
		os.Exit(1)
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	var tw notifier.Notifier
	if *dryRun {
		tw = notifier.NewDryRunNotifier()
	} else {
		client, err := notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		tw = client
	}

	now := time.Now().UTC()
	remaining := *maxTweets
	if *maxTweets <= 0 {
		remaining = unlimitedBudget
	}
	total := 0

	for _, g := range games {
		records := store.LoadEvents(gameFiles[g])
		expiring := notifier.EndingSoon(records, now, cfg.AlertDays)
		expiring, remaining = applyBudget(expiring, remaining)
		if len(expiring) == 0 {
			continue
		}

		if *dryRun {
			fmt.Printf("DRY RUN MODE - Would tweet %d %s events:\n\n", len(expiring), g)
		}
		if err := tw.Notify(g, expiring); err != nil {
			fmt.Fprintf(os.Stderr, "Error posting tweets: %v\n", err)
			os.Exit(1)
		}
		total += len(expiring)
	}

	if total == 0 {
		fmt.Println("No events ending soon")
		return
	}
	if !*dryRun {
		fmt.Printf("Successfully posted %d tweets\n", total)
	}
}
