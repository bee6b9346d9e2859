// Command gacha-events-telegram republishes scraped events to a Telegram
// chat: a digest of current events per game, and reminders for events
// crossing the deadline threshold. With --watch it keeps running and
// re-checks at the configured interval.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/gacha-events/internal/calendar"
	"github.com/pfrederiksen/gacha-events/internal/config"
	"github.com/pfrederiksen/gacha-events/internal/event"
	"github.com/pfrederiksen/gacha-events/internal/filter"
	"github.com/pfrederiksen/gacha-events/internal/logger"
	"github.com/pfrederiksen/gacha-events/internal/notifier"
	"github.com/pfrederiksen/gacha-events/internal/runner"
	"github.com/pfrederiksen/gacha-events/internal/storage"
	"github.com/pfrederiksen/gacha-events/internal/telegram"
)

var (
	configPath  = flag.String("config", "", "Path to YAML config file")
	game        = flag.String("game", "all", "Game to publish: genshin, waves, or all")
	dryRun      = flag.Bool("dry-run", false, "Print messages without sending")
	refresh     = flag.Bool("refresh", false, "Run the scrapers before publishing")
	remindOnly  = flag.Bool("remind", false, "Send only deadline reminders, no digest")
	watch       = flag.Bool("watch", false, "Keep running, re-checking at the configured interval")
	filterQuery = flag.String("filter", "", "Filter query, e.g. 'type:web ending<3d'")
	icsDir      = flag.String("ics-dir", "", "Write an .ics file per expiring event to this directory")
)

// gameFiles maps game names to their snapshot filenames.
var gameFiles = map[string]string{
	"genshin": "genshin_events.json",
	"waves":   "waves_events.json",
}

func main() {
	// Credentials may live in a .env file next to the binary.
	_ = godotenv.Load()
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	games, err := selectGames(*game)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	f, err := filter.Parse(*filterQuery)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing filter: %v\n", err)
		os.Exit(1)
	}

	var client *telegram.Client
	if !*dryRun {
		client, err = telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating Telegram client: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	run := func() {
		if *refresh || *watch {
			refreshSnapshots(cfg, games)
		}
		for _, g := range games {
			publish(cfg, store, client, g, f)
		}
	}

	run()
	if !*watch {
		return
	}

	interval := time.Duration(cfg.CheckIntervalHours) * time.Hour
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	logger.Info("watch mode started", logger.Fields{"interval": interval.String()})
	for range ticker.C {
		run()
	}
}

func selectGames(name string) ([]string, error) {
	switch strings.ToLower(name) {
	case "all":
		return []string{"genshin", "waves"}, nil
	case "genshin", "waves":
		return []string{strings.ToLower(name)}, nil
	}
	return nil, fmt.Errorf("unknown game %q: use genshin, waves, or all", name)
}

func refreshSnapshots(cfg config.Config, games []string) {
	binaries := make([]string, 0, len(games))
	for _, g := range games {
		switch g {
		case "genshin":
			binaries = append(binaries, cfg.Scrapers.Genshin)
		case "waves":
			binaries = append(binaries, cfg.Scrapers.Waves)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	for _, res := range runner.RunAll(ctx, binaries...) {
		if !res.Success {
			fmt.Fprintf(os.Stderr, "Warning: %s failed: %v\n%s\n", res.Binary, res.Err, res.Output)
		}
	}
}

func publish(cfg config.Config, store *storage.Storage, client *telegram.Client, game string, f *filter.Filter) {
	now := time.Now().UTC()
	records := f.Apply(store.LoadEvents(gameFiles[game]), now)

	var messages []string
	if !*remindOnly {
		messages = append(messages, telegram.FormatDigest(game, records, now, cfg.AlertDays, cfg.MaxMessages))
	}

	expiring := notifier.EndingSoon(records, now, cfg.AlertDays)
	for _, rec := range expiring {
		if *remindOnly {
			messages = append(messages, telegram.FormatReminder(game, rec, now))
		}
		if *icsDir != "" {
			writeICS(*icsDir, game, rec)
		}
	}

	for _, msg := range messages {
		if *dryRun {
			fmt.Println("--- Message ---")
			fmt.Println(msg)
			fmt.Println()
			continue
		}
		if err := client.SendMessage(msg); err != nil {
			logger.Error("sending message failed", logger.Fields{"game": game}, err)
		} else {
			logger.IncrCounter("telegram.messages")
		}
	}
}

func writeICS(dir, game string, rec *event.Record) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("creating ics directory failed", logger.Fields{"dir": dir}, err)
		return
	}

	name := strings.ReplaceAll(strings.ToLower(rec.Name), " ", "_")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.ics", game, name))
	if err := os.WriteFile(path, []byte(calendar.GenerateICS(rec, game)), 0644); err != nil {
		logger.Error("writing ics file failed", logger.Fields{"path": path}, err)
	}
}
