package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const monthNames = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sept|Sep|Oct|Nov|Dec)`

// datePatterns are applied in declaration order; matches are concatenated
// across patterns without deduplication, so callers see textual dates
// before ISO ones regardless of position in the input.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(monthNames + `\.?\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`\d{1,2}\s+` + monthNames + `\s+\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}(?:\s+\d{2}:\d{2})?`),
	regexp.MustCompile(`\d{4}/\d{2}/\d{2}(?:\s+\d{2}:\d{2})?`),
}

// sortTimestampPattern matches the hidden timestamps fandom embeds in
// data-sort-value attributes on duration cells.
var sortTimestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}`)

var yearPattern = regexp.MustCompile(`\d{4}`)

// durationLabels are the infobox row labels that carry the event's run
// time, in the spellings the two wikis actually use.
var durationLabels = map[string]bool{
	"duration":       true,
	"event period":   true,
	"time":           true,
	"period":         true,
	"event duration": true,
}

// rangeSeparators are tried in order when splitting "start SEP end" text.
// The spaced hyphen comes after the dash variants so hyphenated words in
// event names do not split a range.
var rangeSeparators = []string{"~", "–", "—", " - ", " to "}

// endOnlyMarkers indicate that a lone date is a deadline, not a start.
var endOnlyMarkers = []string{"until", "ends", "deadline"}

// ExtractDates returns every date-shaped substring found in text, in
// pattern order. Matched strings are returned verbatim.
func ExtractDates(text string) []string {
	var dates []string
	for _, pattern := range datePatterns {
		dates = append(dates, pattern.FindAllString(text, -1)...)
	}
	return dates
}

// splitRange splits "start SEP end" on the first separator that yields two
// non-empty halves.
func splitRange(text string) (start, end string, ok bool) {
	for _, sep := range rangeSeparators {
		if idx := strings.Index(text, sep); idx >= 0 {
			start = strings.TrimSpace(text[:idx])
			end = strings.TrimSpace(text[idx+len(sep):])
			if start != "" && end != "" {
				return start, end, true
			}
		}
	}
	return "", "", false
}

func isEndOnly(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range endOnlyMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// datesFromText assigns extracted dates to a start/end pair. Two or more
// dates fill both slots in order. A single date is normally a start, but
// becomes an end when the surrounding text reads like a deadline.
func datesFromText(text string) (start, end string) {
	dates := ExtractDates(text)
	switch {
	case len(dates) >= 2:
		return dates[0], dates[1]
	case len(dates) == 1:
		if isEndOnly(text) {
			return "", dates[0]
		}
		return dates[0], ""
	}
	return "", ""
}

// FindInfobox locates the event detail page's infobox. Portable infoboxes
// are preferred; older pages use a plain wikitable.
func FindInfobox(doc *goquery.Document) *goquery.Selection {
	if sel := doc.Find("aside.portable-infobox").First(); sel.Length() > 0 {
		return sel
	}
	if sel := doc.Find("table.wikitable").First(); sel.Length() > 0 {
		return sel
	}
	return nil
}

// findInfoboxValue scans an infobox for a row whose label matches one of
// the given lowercase labels and returns the paired value text.
func findInfoboxValue(infobox *goquery.Selection, labels map[string]bool) string {
	var value string
	infobox.Find("div, th, h3").EachWithBreak(func(i int, label *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(label.Text()))
		if !labels[text] {
			return true
		}
		value = labelValue(label)
		return value == ""
	})
	return value
}

// ExtractDatesFromInfobox scans an infobox for a duration row and parses
// its value into a start/end pair. Returns empty strings when no duration
// row is present.
func ExtractDatesFromInfobox(infobox *goquery.Selection) (start, end string) {
	value := findInfoboxValue(infobox, durationLabels)
	if value == "" {
		return "", ""
	}

	if s, e, ok := splitRange(value); ok {
		return s, e
	}
	return datesFromText(value)
}

// labelValue finds the value element paired with an infobox label.
// Portable infoboxes pair a label with a sibling value div, wikitables
// pair a th with the adjacent td, and some pages use a section heading
// followed by a div or paragraph.
func labelValue(label *goquery.Selection) string {
	if goquery.NodeName(label) == "th" {
		if td := label.Parent().Find("td").First(); td.Length() > 0 {
			return strings.TrimSpace(td.Text())
		}
		return ""
	}
	if next := label.NextFiltered("div, p, td"); next.Length() > 0 {
		return strings.TrimSpace(next.Text())
	}
	return ""
}

// ExtractDatesFromDurationCell parses an index-table duration cell.
//
// Fandom event tables hide sortable timestamps in data-sort-value
// attributes, ordered end first then start. When exactly two timestamps
// are present they are authoritative. Otherwise the visible text is split
// as a range, inheriting the end's year when the start omits its own.
func ExtractDatesFromDurationCell(cell *goquery.Selection) (start, end string) {
	var stamps []string
	cell.Find("[data-sort-value]").Each(func(i int, el *goquery.Selection) {
		attr, _ := el.Attr("data-sort-value")
		stamps = append(stamps, sortTimestampPattern.FindAllString(attr, -1)...)
	})
	if len(stamps) == 0 {
		if attr, ok := cell.Attr("data-sort-value"); ok {
			stamps = sortTimestampPattern.FindAllString(attr, -1)
		}
	}
	if len(stamps) == 2 {
		return stamps[1], stamps[0]
	}

	text := strings.TrimSpace(cell.Text())
	if s, e, ok := splitRange(text); ok {
		if !yearPattern.MatchString(s) {
			if year := yearPattern.FindString(e); year != "" {
				s = s + ", " + year
			}
		}
		return s, e
	}
	return datesFromText(text)
}
