package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.AlertDays != 3 {
		t.Errorf("AlertDays = %d, want 3", c.AlertDays)
	}
	if c.CheckIntervalHours != 12 {
		t.Errorf("CheckIntervalHours = %d, want 12", c.CheckIntervalHours)
	}
	if c.DataDir == "" {
		t.Error("DataDir should have a default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `data_dir: /tmp/events
alert_days: 5
telegram:
  token: file-token
  chat_id: "12345"
scrapers:
  genshin: /usr/local/bin/genshin-events
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.DataDir != "/tmp/events" {
		t.Errorf("DataDir = %q", c.DataDir)
	}
	if c.AlertDays != 5 {
		t.Errorf("AlertDays = %d, want 5", c.AlertDays)
	}
	if c.Telegram.Token != "file-token" || c.Telegram.ChatID != "12345" {
		t.Errorf("Telegram = %+v", c.Telegram)
	}
	if c.Scrapers.Genshin != "/usr/local/bin/genshin-events" {
		t.Errorf("Scrapers.Genshin = %q", c.Scrapers.Genshin)
	}
	// Unset fields keep their defaults.
	if c.CheckIntervalHours != 12 {
		t.Errorf("CheckIntervalHours = %d, want 12", c.CheckIntervalHours)
	}
	if c.Scrapers.Waves != "waves-events" {
		t.Errorf("Scrapers.Waves = %q", c.Scrapers.Waves)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("telegram:\n  token: file-token\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "99")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Telegram.Token != "env-token" {
		t.Errorf("Token = %q, want env-token", c.Telegram.Token)
	}
	if c.Telegram.ChatID != "99" {
		t.Errorf("ChatID = %q, want 99", c.Telegram.ChatID)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
