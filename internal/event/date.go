package event

import (
	"sort"
	"strings"
	"time"
)

// FarFuture is the sentinel used when sorting records with unparseable end
// dates so they land last instead of breaking the sort.
var FarFuture = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order. Layouts with a time component come before
// their date-only counterparts so a timestamped string is not truncated.
var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04",
	"2006/01/02",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate attempts to parse a scraped date string.
// Returns the zero time if no known layout matches.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CanonicalDate reformats a parseable date string as "2006-01-02", keeping
// the "15:04" suffix when the original carried one. Unparseable strings are
// returned verbatim, never discarded.
func CanonicalDate(s string) string {
	t := ParseDate(s)
	if t.IsZero() {
		return s
	}
	if t.Hour() != 0 || t.Minute() != 0 {
		return t.Format("2006-01-02 15:04")
	}
	return t.Format("2006-01-02")
}

// RepairDates restores the start<=end invariant on a record, canonicalizing
// both dates and swapping them when extraction yielded a reversed range.
// Idempotent: repairing an already-repaired record changes nothing, so it
// is safe to apply both at scrape time and again at read time.
func RepairDates(r *Record) {
	r.StartDate = CanonicalDate(strings.TrimSpace(r.StartDate))
	r.EndDate = CanonicalDate(strings.TrimSpace(r.EndDate))

	start := ParseDate(r.StartDate)
	end := ParseDate(r.EndDate)
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		r.StartDate, r.EndDate = r.EndDate, r.StartDate
	}
}

// endTime returns the record's parsed end date, or FarFuture when the end
// date is missing or unparseable.
func (r *Record) endTime() time.Time {
	if t := ParseDate(r.EndDate); !t.IsZero() {
		return t
	}
	return FarFuture
}

// IsActive reports whether the event's end date is today or later.
// Records with an unparseable end date are considered active, since hiding
// an event we cannot date is worse than showing a stale one.
func (r *Record) IsActive(now time.Time) bool {
	end := ParseDate(r.EndDate)
	if end.IsZero() {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !end.Before(today)
}

// DaysRemaining returns the number of whole days until the event ends.
// The second return value is false when the end date cannot be parsed.
func (r *Record) DaysRemaining(now time.Time) (int, bool) {
	end := ParseDate(r.EndDate)
	if end.IsZero() {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	days := int(endDay.Sub(today).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

// SortByEndDate orders records soonest-ending first. Records without a
// parseable end date sort last via the FarFuture sentinel.
func SortByEndDate(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := records[i].endTime(), records[j].endTime()
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})
}
