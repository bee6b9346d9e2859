package calendar

import (
	"strings"
	"testing"

	"github.com/pfrederiksen/gacha-events/internal/event"
)

func TestGenerateICS(t *testing.T) {
	rec := &event.Record{
		Name:      "Ley Line Overflow",
		Link:      "https://genshin-impact.fandom.com/wiki/Ley_Line_Overflow",
		StartDate: "2025-02-12",
		EndDate:   "2025-03-19",
		Type:      "In-Game",
	}

	ics := GenerateICS(rec, "genshin")

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"DTSTART;VALUE=DATE:20250212",
		// DTEND is exclusive, so the 19th becomes the 20th.
		"DTEND;VALUE=DATE:20250320",
		"SUMMARY:Genshin Impact: Ley Line Overflow",
		"URL:https://genshin-impact.fandom.com/wiki/Ley_Line_Overflow",
		"END:VEVENT",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("ICS missing %q:\n%s", want, ics)
		}
	}
}

func TestGenerateICSUndated(t *testing.T) {
	rec := &event.Record{Name: "Mystery Event"}
	ics := GenerateICS(rec, "waves")

	if !strings.Contains(ics, "DTSTART;VALUE=DATE:") {
		t.Errorf("expected placeholder dates:\n%s", ics)
	}
	if !strings.Contains(ics, "Wuthering Waves: Mystery Event") {
		t.Errorf("missing summary:\n%s", ics)
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a,b", `a\,b`},
		{"a;b", `a\;b`},
		{"a\nb", `a\nb`},
		{`a\b`, `a\\b`},
	}

	for _, tt := range tests {
		if got := escapeICS(tt.input); got != tt.want {
			t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
