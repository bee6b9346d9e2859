package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/gacha-events/internal/event"
	"github.com/pfrederiksen/gacha-events/internal/logger"
)

// MergePolicy decides what happens when the same reward name is extracted
// more than once from a page.
type MergePolicy int

const (
	// MergeMax keeps the larger quantity. Event pages often list a
	// per-task amount next to the grand total, and the total wins.
	MergeMax MergePolicy = iota

	// MergeSum adds quantities together, joining non-numeric ones with
	// a "+" so no extracted value is silently dropped.
	MergeSum
)

// uiNoise is wiki chrome that leaks into card and link text.
var uiNoise = map[string]bool{
	"Sign in to edit": true,
	"Edit":            true,
	"Add":             true,
	"Sign In":         true,
	"Create":          true,
	"View source":     true,
}

var firstIntPattern = regexp.MustCompile(`\d[\d,]*`)

// parseQuantity parses a reward amount like "600", "x10", "×3", or
// "60,000". Returns false when the text holds no usable number.
func parseQuantity(text string) (int64, bool) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "×")
	text = strings.TrimPrefix(text, "x")
	text = strings.ReplaceAll(text, ",", "")
	if text == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func mergeReward(items map[string]event.Quantity, name string, qty event.Quantity, policy MergePolicy) {
	existing, ok := items[name]
	if !ok {
		items[name] = qty
		return
	}

	switch policy {
	case MergeSum:
		if existing.IsNumeric() && qty.IsNumeric() {
			items[name] = event.NumericQuantity(existing.N + qty.N)
		} else {
			items[name] = event.TextQuantity(existing.String() + "+" + qty.String())
		}
	default: // MergeMax
		if existing.IsNumeric() && qty.IsNumeric() {
			if qty.N > existing.N {
				items[name] = qty
			}
		}
		// A numeric value is never displaced by a textual one.
	}
}

// cardName extracts the reward name from a card. The item link's title
// attribute is most reliable; primogem icons are recognized by their image
// source or link target when the title is missing.
func cardName(card *goquery.Selection) string {
	link := card.Find("a").First()
	if title, ok := link.Attr("title"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}

	var name string
	card.Find("img").EachWithBreak(func(i int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		if strings.Contains(src, "Primogem") {
			name = "Primogem"
			return false
		}
		return true
	})
	if name != "" {
		return name
	}

	if href, ok := link.Attr("href"); ok && strings.Contains(href, "Primogem") {
		return "Primogem"
	}

	if text := strings.TrimSpace(link.Text()); text != "" {
		return text
	}
	if caption := card.Find("span.card-caption a").First(); caption.Length() > 0 {
		return strings.TrimSpace(caption.Text())
	}
	return ""
}

func keepRewardName(name string) bool {
	return name != "" && name != event.UnknownReward && !uiNoise[name]
}

// rewardsByHeading scans the card gallery under a "Total Rewards" section
// heading. Quantities here are authoritative, so a card whose amount text
// is not numeric is skipped rather than guessed at. Cards it consumes are
// recorded in seen so the page-wide scan does not count them twice.
func rewardsByHeading(doc *goquery.Document, items map[string]event.Quantity, seen map[*html.Node]bool, policy MergePolicy) int {
	found := 0
	doc.Find("h2, h3").Each(func(i int, heading *goquery.Selection) {
		if !strings.Contains(heading.Text(), "Total Rewards") {
			return
		}
		heading.NextUntil("h2, h3").Find("div.card-container").Each(func(j int, card *goquery.Selection) {
			seen[card.Get(0)] = true
			name := cardName(card)
			if !keepRewardName(name) {
				return
			}
			qtyText := strings.TrimSpace(card.Find("span.card-text").First().Text())
			n, ok := parseQuantity(qtyText)
			if !ok {
				logger.Warn("skipping reward card with non-numeric quantity", logger.Fields{
					"name":     name,
					"quantity": qtyText,
				})
				return
			}
			mergeReward(items, name, event.NumericQuantity(n), policy)
			found++
		})
	})
	return found
}

// rewardsFromTables scans reward tables row by row, taking the first cell
// as the item name and the first integer in the remaining cells as the
// quantity, defaulting to 1.
func rewardsFromTables(doc *goquery.Document, items map[string]event.Quantity, policy MergePolicy) int {
	found := 0
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		if !strings.Contains(strings.ToLower(table.Text()), "reward") {
			return
		}
		table.Find("tr").Each(func(j int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			name := strings.TrimSpace(cells.First().Text())
			if !keepRewardName(name) {
				return
			}

			qty := event.NumericQuantity(1)
			cells.Slice(1, cells.Length()).EachWithBreak(func(k int, cell *goquery.Selection) bool {
				match := firstIntPattern.FindString(cell.Text())
				if match == "" {
					return true
				}
				if n, ok := parseQuantity(match); ok {
					qty = event.NumericQuantity(n)
					return false
				}
				return true
			})
			mergeReward(items, name, qty, policy)
			found++
		})
	})
	return found
}

// rewardsFromCards scans every reward card on the page, catching items in
// galleries that have no recognizable section heading. Cards without a
// readable amount count as a single item.
func rewardsFromCards(doc *goquery.Document, items map[string]event.Quantity, seen map[*html.Node]bool, policy MergePolicy) int {
	found := 0
	doc.Find("div.card-container").Each(func(i int, card *goquery.Selection) {
		if seen[card.Get(0)] {
			return
		}
		name := cardName(card)
		if !keepRewardName(name) {
			return
		}
		qty := event.NumericQuantity(1)
		qtyText := strings.TrimSpace(card.Find("span.card-text").First().Text())
		if n, ok := parseQuantity(qtyText); ok {
			qty = event.NumericQuantity(n)
		}
		mergeReward(items, name, qty, policy)
		found++
	})
	return found
}

// ExtractRewards runs the reward extraction cascade over a detail page.
//
// The heading-anchored gallery scan runs first and the table scan second,
// as fallback. The plain card scan always runs and its results are merged
// in, since galleries outside the recognized sections still hold real
// rewards. Returns an empty map when the page yields nothing.
func ExtractRewards(doc *goquery.Document, policy MergePolicy) map[string]event.Quantity {
	items := make(map[string]event.Quantity)
	seen := make(map[*html.Node]bool)

	if rewardsByHeading(doc, items, seen, policy) > 0 {
		logger.IncrCounter("rewards.heading")
	} else if rewardsFromTables(doc, items, policy) > 0 {
		logger.IncrCounter("rewards.table")
	}
	if rewardsFromCards(doc, items, seen, policy) > 0 {
		logger.IncrCounter("rewards.cards")
	}

	return items
}
