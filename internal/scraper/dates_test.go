package scraper

import (
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/gacha-events/internal/event"
)

func loadFixture(t *testing.T, name string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc
}

func TestExtractDates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "textual date",
			input: "Event runs from February 12, 2025 to March 19, 2025",
			want:  []string{"February 12, 2025", "March 19, 2025"},
		},
		{
			name:  "iso with time",
			input: "2025-02-20 10:00 ~ 2025-03-10 03:59",
			want:  []string{"2025-02-20 10:00", "2025-03-10 03:59"},
		},
		{
			name:  "day first",
			input: "from 12 February 2025",
			want:  []string{"12 February 2025"},
		},
		{
			name:  "slash format",
			input: "2025/02/12 until 2025/03/19",
			want:  []string{"2025/02/12", "2025/03/19"},
		},
		{
			// Textual patterns are declared first, so their matches come
			// before ISO matches regardless of position in the input.
			name:  "pattern order over position",
			input: "2025-02-12 then March 19, 2025",
			want:  []string{"March 19, 2025", "2025-02-12"},
		},
		{
			name:  "no dates",
			input: "after the Version 5.4 update",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDates(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractDates(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("match %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDatesFromText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart string
		wantEnd   string
	}{
		{"two dates", "February 12, 2025 to March 19, 2025", "February 12, 2025", "March 19, 2025"},
		{"single date is start", "Begins March 19, 2025", "March 19, 2025", ""},
		{"until marks deadline", "Available until March 19, 2025", "", "March 19, 2025"},
		{"ends marks deadline", "Event ends 2025-03-19", "", "2025-03-19"},
		{"deadline marks deadline", "Submission deadline: March 19, 2025", "", "March 19, 2025"},
		{"no dates", "after maintenance", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := datesFromText(tt.input)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("got (%q, %q), want (%q, %q)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestExtractDatesFromInfobox(t *testing.T) {
	t.Run("portable infobox", func(t *testing.T) {
		doc := loadFixture(t, "genshin_event_detail.html")
		infobox := FindInfobox(doc)
		if infobox == nil {
			t.Fatal("expected infobox to be found")
		}

		start, end := ExtractDatesFromInfobox(infobox)
		if start != "March 19, 2025" || end != "February 12, 2025" {
			t.Fatalf("got (%q, %q)", start, end)
		}

		// The reversed range is repaired downstream.
		rec := &event.Record{StartDate: start, EndDate: end}
		event.RepairDates(rec)
		if rec.StartDate != "2025-02-12" || rec.EndDate != "2025-03-19" {
			t.Errorf("after repair: start=%q end=%q", rec.StartDate, rec.EndDate)
		}
	})

	t.Run("wikitable infobox", func(t *testing.T) {
		doc := loadFixture(t, "waves_event_detail.html")
		infobox := FindInfobox(doc)
		if infobox == nil {
			t.Fatal("expected infobox to be found")
		}

		start, end := ExtractDatesFromInfobox(infobox)
		if start != "2025-02-20 10:00" || end != "2025-03-10 03:59" {
			t.Errorf("got (%q, %q)", start, end)
		}
	})

	t.Run("no duration row", func(t *testing.T) {
		doc := docFromString(t, `<aside class="portable-infobox">
			<div class="pi-data"><h3 class="pi-data-label">Type</h3>
			<div class="pi-data-value">In-Game</div></div></aside>`)
		start, end := ExtractDatesFromInfobox(doc.Find("aside.portable-infobox"))
		if start != "" || end != "" {
			t.Errorf("got (%q, %q), want empty", start, end)
		}
	})
}

func TestExtractDatesFromDurationCell(t *testing.T) {
	doc := loadFixture(t, "waves_index.html")
	rows := doc.Find("table tr").FilterFunction(func(i int, row *goquery.Selection) bool {
		return row.Find("td").Length() > 0
	})

	t.Run("hidden sort timestamps", func(t *testing.T) {
		cell := rows.Eq(0).Find("td").Eq(1)
		start, end := ExtractDatesFromDurationCell(cell)
		if start != "2025-02-20 10:00" {
			t.Errorf("start = %q, want 2025-02-20 10:00", start)
		}
		if end != "2025-03-10 03:59" {
			t.Errorf("end = %q, want 2025-03-10 03:59", end)
		}
	})

	t.Run("textual range with year inheritance", func(t *testing.T) {
		cell := rows.Eq(1).Find("td").Eq(1)
		start, end := ExtractDatesFromDurationCell(cell)
		if start != "February 13, 2025" {
			t.Errorf("start = %q, want February 13, 2025", start)
		}
		if end != "March 27, 2025" {
			t.Errorf("end = %q, want March 27, 2025", end)
		}
	})
}

func TestSplitRange(t *testing.T) {
	tests := []struct {
		input     string
		wantStart string
		wantEnd   string
		wantOK    bool
	}{
		{"Feb 12, 2025 ~ Mar 19, 2025", "Feb 12, 2025", "Mar 19, 2025", true},
		{"Feb 12, 2025 – Mar 19, 2025", "Feb 12, 2025", "Mar 19, 2025", true},
		{"Feb 12, 2025 - Mar 19, 2025", "Feb 12, 2025", "Mar 19, 2025", true},
		{"Feb 12 to Mar 19", "Feb 12", "Mar 19", true},
		{"no separator here", "", "", false},
	}

	for _, tt := range tests {
		start, end, ok := splitRange(tt.input)
		if start != tt.wantStart || end != tt.wantEnd || ok != tt.wantOK {
			t.Errorf("splitRange(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.input, start, end, ok, tt.wantStart, tt.wantEnd, tt.wantOK)
		}
	}
}
