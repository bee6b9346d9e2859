// Package calendar renders events as iCalendar entries so deadlines can
// be imported into a calendar app.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/gacha-events/internal/event"
)

// GenerateICS generates an iCalendar (.ics) document for an event. The
// event is rendered as an all-day span from its start date through its
// end date (DTEND is exclusive per RFC 5545, so one day is added).
// Undated events get a one-week placeholder starting today.
func GenerateICS(rec *event.Record, game string) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//gacha-events//gacha-events//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	uid := strings.ReplaceAll(strings.ToLower(rec.Name), " ", "-")
	ics.WriteString(fmt.Sprintf("UID:%s-%s@gacha-events\r\n", game, escapeICS(uid)))

	now := time.Now().UTC()
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", now.Format("20060102T150405Z")))

	start := event.ParseDate(rec.StartDate)
	end := event.ParseDate(rec.EndDate)
	switch {
	case start.IsZero() && end.IsZero():
		start = now
		end = now.AddDate(0, 0, 7)
	case start.IsZero():
		start = end
	case end.IsZero():
		end = start
	}

	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", end.AddDate(0, 0, 1).Format("20060102")))

	summary := fmt.Sprintf("%s: %s", gameTitle(game), rec.Name)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := rec.Name
	if rec.Type != "" {
		description = fmt.Sprintf("%s (%s)", description, rec.Type)
	}
	if rec.EndDate != "" {
		description = fmt.Sprintf("%s\nEnds: %s", description, rec.EndDate)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if rec.Link != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", rec.Link))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func gameTitle(game string) string {
	switch game {
	case "genshin":
		return "Genshin Impact"
	case "waves":
		return "Wuthering Waves"
	}
	return game
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
