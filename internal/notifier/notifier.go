// Package notifier posts ending-soon alerts for events to outside
// channels. Twitter is the real implementation; a dry-run variant prints
// what would be posted.
package notifier

import (
	"time"

	"github.com/pfrederiksen/gacha-events/internal/event"
)

// Notifier posts alerts for events that are about to end.
type Notifier interface {
	Notify(game string, events []*event.Record) error
}

// EndingSoon filters records down to those ending within alertDays of
// now. Records without a parseable end date are excluded: a reminder
// with no deadline is noise.
func EndingSoon(records []*event.Record, now time.Time, alertDays int) []*event.Record {
	var out []*event.Record
	for _, rec := range records {
		days, ok := rec.DaysRemaining(now)
		if !ok || !rec.IsActive(now) {
			continue
		}
		if days <= alertDays {
			out = append(out, rec)
		}
	}
	return out
}
