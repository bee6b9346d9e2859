// Package config loads bot configuration from a YAML file, with defaults
// for everything but credentials.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TelegramConfig holds bot credentials. Both fields may also come from
// TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID environment variables, which take
// precedence so tokens stay out of config files.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID string `yaml:"chat_id"`
}

// ScraperConfig points at the per-game scraper binaries the bot shells
// out to when refreshing data.
type ScraperConfig struct {
	Genshin string `yaml:"genshin"`
	Waves   string `yaml:"waves"`
}

type Config struct {
	// DataDir is where the scrapers write and the bot reads snapshots.
	DataDir string `yaml:"data_dir"`

	// AlertDays is the deadline-reminder threshold: events ending within
	// this many days get flagged.
	AlertDays int `yaml:"alert_days"`

	// CheckIntervalHours is how often the bot re-checks for events
	// crossing the alert threshold.
	CheckIntervalHours int `yaml:"check_interval_hours"`

	// MaxMessages caps how many events a single digest message lists.
	// Zero means no cap.
	MaxMessages int `yaml:"max_messages"`

	Telegram TelegramConfig `yaml:"telegram"`
	Scrapers ScraperConfig  `yaml:"scrapers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DataDir:            "~/.gacha-events",
		AlertDays:          3,
		CheckIntervalHours: 12,
		Scrapers: ScraperConfig{
			Genshin: "genshin-events",
			Waves:   "waves-events",
		},
	}
}

// Load reads a YAML config file and fills in defaults for anything left
// unset. An empty path returns the defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		applyEnv(&c)
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if c.DataDir == "" {
		c.DataDir = Default().DataDir
	}
	if c.AlertDays <= 0 {
		c.AlertDays = Default().AlertDays
	}
	if c.CheckIntervalHours <= 0 {
		c.CheckIntervalHours = Default().CheckIntervalHours
	}
	if c.Scrapers.Genshin == "" {
		c.Scrapers.Genshin = Default().Scrapers.Genshin
	}
	if c.Scrapers.Waves == "" {
		c.Scrapers.Waves = Default().Scrapers.Waves
	}

	applyEnv(&c)
	return c, nil
}

func applyEnv(c *Config) {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		c.Telegram.ChatID = chatID
	}
}
