package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/gacha-events/internal/event"
	"github.com/pfrederiksen/gacha-events/internal/telegram"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the scraped events in the specified format
func WriteOutput(w io.Writer, game string, records []*event.Record, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, records)
	case FormatText:
		return writeText(w, game, records)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, records []*event.Record) error {
	if records == nil {
		records = []*event.Record{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func writeText(w io.Writer, game string, records []*event.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No current events found.")
		return nil
	}

	fmt.Fprintf(w, "%s: %d current event", telegram.GameTitle(game), len(records))
	if len(records) != 1 {
		fmt.Fprint(w, "s")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	for _, rec := range records {
		fmt.Fprintf(w, "  %s\n", rec.Name)
		if rec.Type != "" {
			fmt.Fprintf(w, "    Type:    %s\n", rec.Type)
		}
		switch {
		case rec.StartDate != "" && rec.EndDate != "":
			fmt.Fprintf(w, "    Dates:   %s to %s\n", rec.StartDate, rec.EndDate)
		case rec.EndDate != "":
			fmt.Fprintf(w, "    Ends:    %s\n", rec.EndDate)
		case rec.StartDate != "":
			fmt.Fprintf(w, "    Starts:  %s\n", rec.StartDate)
		}
		if rewards := rec.RewardData(); rewards != nil && !rewards.IsEmpty() {
			fmt.Fprintf(w, "    Rewards: %d item", rewards.Len())
			if rewards.Len() != 1 {
				fmt.Fprint(w, "s")
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "    Link:    %s\n", rec.Link)
		fmt.Fprintln(w)
	}

	return nil
}
