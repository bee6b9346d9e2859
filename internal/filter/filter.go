// Package filter narrows event lists for display and notification.
//
// Filters match on event type, name keywords, and time left before the
// event ends. A filter can be built directly or parsed from a compact
// query string:
//
//	f, err := filter.Parse("type:web ending<3d primogem")
//	filtered := f.Apply(records, time.Now())
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/gacha-events/internal/event"
)

// Filter represents event filtering criteria
type Filter struct {
	// Types matches the event's type, case-insensitive substring.
	Types []string `json:"types,omitempty"`

	// Keywords match against the event name, case-insensitive substring.
	Keywords []string `json:"keywords,omitempty"`

	// EndingWithinDays keeps only events ending within N days. Zero
	// disables the criterion. Events without a parseable end date never
	// match it.
	EndingWithinDays int `json:"ending_within_days,omitempty"`
}

// NewFilter creates an empty filter that matches everything.
func NewFilter() *Filter {
	return &Filter{}
}

// IsEmpty reports whether the filter has no active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.Keywords) == 0 && f.EndingWithinDays == 0
}

// Matches reports whether a record satisfies every active criterion.
func (f *Filter) Matches(rec *event.Record, now time.Time) bool {
	if len(f.Types) > 0 {
		recType := strings.ToLower(rec.Type)
		matched := false
		for _, t := range f.Types {
			if strings.Contains(recType, strings.ToLower(t)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.Keywords) > 0 {
		name := strings.ToLower(rec.Name)
		matched := false
		for _, kw := range f.Keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.EndingWithinDays > 0 {
		days, ok := rec.DaysRemaining(now)
		if !ok || !rec.IsActive(now) || days > f.EndingWithinDays {
			return false
		}
	}

	return true
}

// Apply returns the records matching the filter, preserving order.
func (f *Filter) Apply(records []*event.Record, now time.Time) []*event.Record {
	if f.IsEmpty() {
		return records
	}

	var filtered []*event.Record
	for _, rec := range records {
		if f.Matches(rec, now) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// String returns a human-readable description of the active criteria.
// Returns "No active filters" if the filter is empty.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if len(f.Types) > 0 {
		parts = append(parts, fmt.Sprintf("Types: %s", strings.Join(f.Types, ", ")))
	}
	if len(f.Keywords) > 0 {
		parts = append(parts, fmt.Sprintf("Keywords: %s", strings.Join(f.Keywords, ", ")))
	}
	if f.EndingWithinDays > 0 {
		parts = append(parts, fmt.Sprintf("Ending within %d days", f.EndingWithinDays))
	}
	return strings.Join(parts, " | ")
}
