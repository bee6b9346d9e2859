// Package storage persists scraped event lists as JSON files, one per
// game, under a configurable data directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/gacha-events/internal/event"
	"github.com/pfrederiksen/gacha-events/internal/logger"
)

// Storage handles persistence of event snapshots
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if
// needed. A leading ~ expands to the home directory.
func New(dataDir string) (*Storage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Path returns the snapshot file path for the given filename.
func (s *Storage) Path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

// SaveEvents writes the event list to the named snapshot file. The file
// is written to a temp file first and renamed into place, so a crashed
// run never leaves a half-written snapshot behind.
func (s *Storage) SaveEvents(filename string, records []*event.Record) error {
	if records == nil {
		records = []*event.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}

	path := s.Path(filename)
	tmp, err := os.CreateTemp(s.dataDir, filename+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing events: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}

	logger.Info("events saved", logger.Fields{
		"file":   path,
		"events": len(records),
	})
	return nil
}

// LoadEvents reads the named snapshot file. A missing or unreadable file
// yields an empty list, never an error: consumers treat "no data yet" and
// "corrupt data" the same way and the next scrape rewrites the file.
func (s *Storage) LoadEvents(filename string) []*event.Record {
	path := s.Path(filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("snapshot unreadable", logger.Fields{"file": path})
		}
		return []*event.Record{}
	}

	var records []*event.Record
	if err := json.Unmarshal(data, &records); err != nil {
		logger.Warn("snapshot corrupt, treating as empty", logger.Fields{"file": path})
		return []*event.Record{}
	}
	if records == nil {
		records = []*event.Record{}
	}

	for _, rec := range records {
		event.RepairDates(rec)
	}
	return records
}
