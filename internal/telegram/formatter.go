package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/pfrederiksen/gacha-events/internal/event"
)

// rewardPriority pins the premium currencies to the top of reward lists;
// everything else follows alphabetically.
var rewardPriority = []string{"Primogem", "Mora", "Astrite", "Shell Credit"}

// GameTitle maps a source name to its display title.
func GameTitle(game string) string {
	switch game {
	case "genshin":
		return "Genshin Impact"
	case "waves":
		return "Wuthering Waves"
	}
	return game
}

// FormatEvent renders one event as an HTML message block. Events ending
// within alertDays of now get a deadline warning line.
func FormatEvent(rec *event.Record, now time.Time, alertDays int) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("🎪 <a href=\"%s\"><b>%s</b></a>\n", rec.Link, html.EscapeString(rec.Name)))

	if rec.Type != "" {
		msg.WriteString(fmt.Sprintf("🏷 %s\n", html.EscapeString(rec.Type)))
	}

	switch {
	case rec.StartDate != "" && rec.EndDate != "":
		msg.WriteString(fmt.Sprintf("📅 %s to %s\n", rec.StartDate, rec.EndDate))
	case rec.EndDate != "":
		msg.WriteString(fmt.Sprintf("📅 Until %s\n", rec.EndDate))
	case rec.StartDate != "":
		msg.WriteString(fmt.Sprintf("📅 From %s\n", rec.StartDate))
	case rec.Dates != "":
		msg.WriteString(fmt.Sprintf("📅 %s\n", html.EscapeString(rec.Dates)))
	}

	if days, ok := rec.DaysRemaining(now); ok {
		switch {
		case days == 0:
			msg.WriteString("⚠️ <b>Ends today!</b>\n")
		case days == 1:
			msg.WriteString("⚠️ <b>Ends tomorrow!</b>\n")
		case days <= alertDays:
			msg.WriteString(fmt.Sprintf("⚠️ <b>Ends in %d days</b>\n", days))
		}
	}

	msg.WriteString(formatRewards(rec))

	return msg.String()
}

// formatRewards renders the reward list with priority items first.
func formatRewards(rec *event.Record) string {
	rewards := rec.RewardData()
	if rewards == nil || rewards.IsEmpty() {
		return "🎁 No reward information available\n"
	}

	items := rewards.Normalize()
	var msg strings.Builder
	msg.WriteString("🎁 Rewards:\n")
	for _, name := range event.SortedNames(items, rewardPriority) {
		qty := items[name]
		if qty.IsNumeric() && qty.N == 1 {
			msg.WriteString(fmt.Sprintf("   • %s\n", html.EscapeString(name)))
		} else {
			msg.WriteString(fmt.Sprintf("   • %s ×%s\n", html.EscapeString(name), qty.String()))
		}
	}
	return msg.String()
}

// FormatDigest renders the full current-events message for one game.
// maxEvents caps the list when positive; zero means no cap.
func FormatDigest(game string, records []*event.Record, now time.Time, alertDays, maxEvents int) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("🎮 <b>%s Events</b>\n\n", GameTitle(game)))

	active := make([]*event.Record, 0, len(records))
	for _, rec := range records {
		if rec.IsActive(now) {
			active = append(active, rec)
		}
	}

	if len(active) == 0 {
		msg.WriteString("No active events found")
		return msg.String()
	}

	truncated := 0
	if maxEvents > 0 && len(active) > maxEvents {
		truncated = len(active) - maxEvents
		active = active[:maxEvents]
	}

	for i, rec := range active {
		msg.WriteString(FormatEvent(rec, now, alertDays))
		if i < len(active)-1 {
			msg.WriteString("\n")
		}
	}

	if truncated > 0 {
		msg.WriteString(fmt.Sprintf("\n…and %d more", truncated))
	}

	return msg.String()
}

// FormatReminder renders a deadline alert for a single expiring event.
func FormatReminder(game string, rec *event.Record, now time.Time) string {
	var msg strings.Builder

	msg.WriteString("⏰ <b>Event Ending Soon!</b>\n\n")
	msg.WriteString(fmt.Sprintf("🎮 %s\n", GameTitle(game)))
	msg.WriteString(fmt.Sprintf("🎪 <a href=\"%s\"><b>%s</b></a>\n", rec.Link, html.EscapeString(rec.Name)))

	if days, ok := rec.DaysRemaining(now); ok {
		switch days {
		case 0:
			msg.WriteString("📅 <b>Ends today!</b>\n")
		case 1:
			msg.WriteString("📅 <b>Ends tomorrow!</b>\n")
		default:
			msg.WriteString(fmt.Sprintf("📅 <b>Ends in %d days</b> (%s)\n", days, rec.EndDate))
		}
	} else if rec.EndDate != "" {
		msg.WriteString(fmt.Sprintf("📅 Ends %s\n", rec.EndDate))
	}

	msg.WriteString(formatRewards(rec))

	return msg.String()
}
