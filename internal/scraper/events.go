package scraper

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/gacha-events/internal/event"
	"github.com/pfrederiksen/gacha-events/internal/logger"
)

// ErrNoCurrentSection is returned when the index page has no recognizable
// current-events section, typically after a wiki layout change.
var ErrNoCurrentSection = errors.New("no current events section found")

var currentAnchorIDs = []string{"Current", "Current_Events", "Ongoing_Events"}

var currentHeadingTexts = map[string]bool{
	"Current":        true,
	"Current Events": true,
	"Ongoing Events": true,
}

var typeLabels = map[string]bool{
	"type":       true,
	"event type": true,
}

// indexEntry is one event row pulled from the index page before its
// detail page has been fetched.
type indexEntry struct {
	name     string
	link     string
	duration *goquery.Selection
}

// findCurrentHeading locates the section heading that introduces the list
// of running events. The anchor id usually sits on a span inside the
// heading, so the match walks up to the enclosing h2/h3. Falls back to an
// exact heading-text match with the edit link stripped.
func findCurrentHeading(doc *goquery.Document) *goquery.Selection {
	for _, id := range currentAnchorIDs {
		anchor := doc.Find("#" + id).First()
		if anchor.Length() == 0 {
			continue
		}
		name := goquery.NodeName(anchor)
		if name == "h2" || name == "h3" {
			return anchor
		}
		if heading := anchor.Closest("h2, h3"); heading.Length() > 0 {
			return heading
		}
	}

	var found *goquery.Selection
	doc.Find("h2, h3").EachWithBreak(func(i int, heading *goquery.Selection) bool {
		text := strings.TrimSpace(headingText(heading))
		if currentHeadingTexts[text] {
			found = heading
			return false
		}
		return true
	})
	return found
}

// headingText returns the heading's text without the trailing [edit] link.
func headingText(heading *goquery.Selection) string {
	clone := heading.Clone()
	clone.Find(".mw-editsection").Remove()
	return clone.Text()
}

// resolveLink turns a wiki href into an absolute URL.
func resolveLink(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// tableHeaderTerms mark a table as an event listing when they appear in
// its header row.
var tableHeaderTerms = []string{"event", "duration", "type"}

func isEventTable(table *goquery.Selection) (durationCol int, ok bool) {
	durationCol = -1
	matched := 0
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(th.Text()))
		for _, term := range tableHeaderTerms {
			if strings.Contains(text, term) {
				matched++
				break
			}
		}
		if strings.Contains(text, "duration") {
			durationCol = i
		}
	})
	return durationCol, matched >= 1
}

// collectEntries gathers event links from the section following the
// current-events heading. The layouts seen in the wild, in order of
// preference: a plain link list, a headed event table with a duration
// column, and a bare table of linked rows. Entries are deduplicated by
// resolved link, first occurrence winning.
func collectEntries(heading *goquery.Selection, baseURL string) []indexEntry {
	region := heading.NextUntil("h2, h3")

	var entries []indexEntry
	seen := make(map[string]bool)

	add := func(link *goquery.Selection, duration *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}
		resolved := resolveLink(baseURL, href)
		if seen[resolved] {
			return
		}
		seen[resolved] = true
		entries = append(entries, indexEntry{name: name, link: resolved, duration: duration})
	}

	if list := region.Filter("ul").AddSelection(region.Find("ul")).First(); list.Length() > 0 {
		list.Find("li a[href]").Each(func(i int, link *goquery.Selection) {
			add(link, nil)
		})
		if len(entries) > 0 {
			return entries
		}
	}

	region.Filter("table").AddSelection(region.Find("table")).EachWithBreak(func(i int, table *goquery.Selection) bool {
		durationCol, ok := isEventTable(table)
		if !ok {
			return true
		}
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() == 0 {
				return
			}
			link := cells.First().Find("a[href]").First()
			if link.Length() == 0 {
				return
			}
			var duration *goquery.Selection
			if durationCol >= 0 && cells.Length() > durationCol {
				duration = cells.Eq(durationCol)
			}
			add(link, duration)
		})
		return len(entries) == 0
	})
	if len(entries) > 0 {
		return entries
	}

	// Last resort: any linked table row in the section.
	region.Find("tr").Each(func(i int, row *goquery.Selection) {
		link := row.Find("td a[href]").First()
		if link.Length() == 0 {
			return
		}
		add(link, nil)
	})
	return entries
}

// inferType classifies an event by keywords in its name or page link,
// falling back to the source's default. Wiki URLs spell multi-word
// keywords with underscores, so links are checked against that form.
func inferType(name, link string, rules []TypeRule, defaultType string) string {
	nameLower := strings.ToLower(name)
	linkLower := strings.ToLower(link)
	for _, rule := range rules {
		if strings.Contains(nameLower, rule.Keyword) {
			return rule.Type
		}
		if strings.Contains(linkLower, strings.ReplaceAll(rule.Keyword, " ", "_")) {
			return rule.Type
		}
	}
	return defaultType
}

// scrapeEvent builds a full record for one index entry, fetching its
// detail page for dates, type, and rewards. A failed detail fetch degrades
// to the index data rather than losing the event.
func (s *Scraper) scrapeEvent(entry indexEntry) *event.Record {
	rec := &event.Record{
		Name:      entry.name,
		Link:      entry.link,
		SourceURL: s.source.IndexURL,
	}

	if entry.duration != nil {
		rec.StartDate, rec.EndDate = ExtractDatesFromDurationCell(entry.duration)
		rec.Dates = strings.Join(strings.Fields(entry.duration.Text()), " ")
	}

	detail, err := s.fetcher.Get(entry.link)
	if err != nil {
		logger.Warn("detail page fetch failed, keeping index data", logger.Fields{
			"game":  s.source.Name,
			"event": entry.name,
			"url":   entry.link,
		})
		rec.Type = inferType(rec.Name, rec.Link, s.source.TypeRules, s.source.DefaultType)
		event.RepairDates(rec)
		return rec
	}

	infobox := FindInfobox(detail)

	if rec.StartDate == "" && rec.EndDate == "" {
		if infobox != nil {
			rec.StartDate, rec.EndDate = ExtractDatesFromInfobox(infobox)
		}
		if rec.StartDate == "" && rec.EndDate == "" {
			rec.StartDate, rec.EndDate = datesFromText(leadText(detail))
		}
	}

	if infobox != nil {
		rec.Type = strings.TrimSpace(findInfoboxValue(infobox, typeLabels))
	}
	if rec.Type == "" {
		rec.Type = inferType(rec.Name, rec.Link, s.source.TypeRules, s.source.DefaultType)
	}

	items := ExtractRewards(detail, s.source.Merge)
	if len(items) > 0 {
		s.source.attachRewards(rec, items)
	}

	event.RepairDates(rec)
	return rec
}

// leadText returns the page's opening paragraphs, the usual home of
// "Event runs until ..." phrasing when the infobox lacks a duration row.
func leadText(doc *goquery.Document) string {
	var parts []string
	doc.Find("div.mw-parser-output > p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		parts = append(parts, p.Text())
		return i < 2
	})
	return strings.Join(parts, "\n")
}

// Run scrapes the source's index page and every current event's detail
// page, returning the records sorted by end date. Returns
// ErrNoCurrentSection with an empty slice when the index layout is not
// recognized.
func (s *Scraper) Run() ([]*event.Record, error) {
	logger.Info("scrape started", logger.Fields{
		"game": s.source.Name,
		"url":  s.source.IndexURL,
	})

	doc, err := s.fetcher.Get(s.source.IndexURL)
	if err != nil {
		return nil, err
	}

	heading := findCurrentHeading(doc)
	if heading == nil {
		logger.Warn("current events section not found", logger.Fields{
			"game": s.source.Name,
			"url":  s.source.IndexURL,
		})
		return []*event.Record{}, ErrNoCurrentSection
	}

	entries := collectEntries(heading, s.source.BaseURL)
	records := make([]*event.Record, 0, len(entries))
	for _, entry := range entries {
		rec := s.scrapeEvent(entry)
		if rec.Name == "" || rec.Name == event.UnknownEventName {
			logger.IncrCounter("scrape.skipped")
			continue
		}
		records = append(records, rec)
		logger.IncrCounter("scrape.events")
	}

	event.SortByEndDate(records)
	logger.Info("scrape finished", logger.Fields{
		"game":   s.source.Name,
		"events": len(records),
	})
	return records, nil
}
