package event

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// UnknownEventName marks a record whose name could not be extracted.
// The event-list extractor drops such records before persisting.
const UnknownEventName = "Unknown Event Name"

// UnknownReward marks a reward entry whose name could not be extracted.
const UnknownReward = "Unknown Reward"

// Record represents one scraped in-game event.
//
// Field presence varies by source: the list-index source emits start_date,
// end_date and reward_list; the table-index source emits rewards and may
// carry the raw duration text in dates when the cell could not be split.
// Consumers must probe for either reward key and either date form.
type Record struct {
	Name       string   `json:"name"`
	Link       string   `json:"link"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	Dates      string   `json:"dates,omitempty"`
	Type       string   `json:"type,omitempty"`
	RewardList *Rewards `json:"reward_list,omitempty"`
	Rewards    *Rewards `json:"rewards,omitempty"`
	SourceURL  string   `json:"source_url,omitempty"`
}

// RewardData returns whichever reward field is populated, or nil.
func (r *Record) RewardData() *Rewards {
	if r.RewardList != nil && !r.RewardList.IsEmpty() {
		return r.RewardList
	}
	if r.Rewards != nil && !r.Rewards.IsEmpty() {
		return r.Rewards
	}
	return nil
}

// Quantity is a reward amount. Most quantities are integers; source markup
// occasionally yields non-numeric text, which is retained verbatim in Raw.
type Quantity struct {
	N   int64
	Raw string
}

// NumericQuantity returns an integer quantity.
func NumericQuantity(n int64) Quantity { return Quantity{N: n} }

// TextQuantity returns a verbatim non-numeric quantity.
func TextQuantity(s string) Quantity { return Quantity{Raw: s} }

// IsNumeric reports whether the quantity carries an integer value.
func (q Quantity) IsNumeric() bool { return q.Raw == "" }

func (q Quantity) String() string {
	if q.IsNumeric() {
		return strconv.FormatInt(q.N, 10)
	}
	return q.Raw
}

// MarshalJSON emits a number for numeric quantities and a string otherwise.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.IsNumeric() {
		return json.Marshal(q.N)
	}
	return json.Marshal(q.Raw)
}

// UnmarshalJSON accepts a JSON number or string.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*q = Quantity{N: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("quantity must be a number or string: %w", err)
	}
	*q = Quantity{Raw: s}
	return nil
}

// Rewards is a tagged variant: either a mapping from item name to quantity
// or an encoded list of "name:quantity" strings, depending on which scraper
// version produced the file. Exactly one form is populated.
type Rewards struct {
	Items   map[string]Quantity
	Encoded []string
}

// NewMapping wraps a name→quantity mapping.
func NewMapping(items map[string]Quantity) *Rewards {
	return &Rewards{Items: items}
}

// NewEncodedList wraps a list of "name:quantity" strings.
func NewEncodedList(entries []string) *Rewards {
	return &Rewards{Encoded: entries}
}

// IsEmpty reports whether the variant holds no entries.
func (r *Rewards) IsEmpty() bool {
	return r == nil || (len(r.Items) == 0 && len(r.Encoded) == 0)
}

// Len returns the number of reward entries in whichever form is populated.
func (r *Rewards) Len() int {
	if r == nil {
		return 0
	}
	if r.Encoded != nil {
		return len(r.Encoded)
	}
	return len(r.Items)
}

// MarshalJSON writes the encoded list as a JSON array and the mapping as a
// JSON object, matching the on-disk layouts the scrapers have produced.
func (r *Rewards) MarshalJSON() ([]byte, error) {
	if r.Encoded != nil {
		return json.Marshal(r.Encoded)
	}
	if r.Items == nil {
		return json.Marshal(map[string]Quantity{})
	}
	return json.Marshal(r.Items)
}

// UnmarshalJSON probes the JSON shape: an array is decoded as the encoded
// list, an object as the mapping.
func (r *Rewards) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &r.Encoded)
	}
	return json.Unmarshal(data, &r.Items)
}

// Normalize produces the canonical name→quantity mapping from either form.
// Encoded entries split on the last colon; entries without a colon get
// quantity 1. Duplicate names in the encoded form keep the larger value.
func (r *Rewards) Normalize() map[string]Quantity {
	out := make(map[string]Quantity)
	if r == nil {
		return out
	}
	for name, q := range r.Items {
		out[name] = q
	}
	for _, entry := range r.Encoded {
		name := entry
		qty := NumericQuantity(1)
		if i := strings.LastIndex(entry, ":"); i > 0 {
			name = entry[:i]
			if n, err := strconv.ParseInt(strings.TrimSpace(entry[i+1:]), 10, 64); err == nil {
				qty = NumericQuantity(n)
			} else {
				qty = TextQuantity(strings.TrimSpace(entry[i+1:]))
			}
		}
		prev, ok := out[name]
		if !ok || (prev.IsNumeric() && qty.IsNumeric() && qty.N > prev.N) {
			out[name] = qty
		}
	}
	return out
}

// SortedNames returns the normalized item names with the given priority
// items first (in priority order) and the remainder alphabetical.
func SortedNames(items map[string]Quantity, priority []string) []string {
	names := make([]string, 0, len(items))
	seen := make(map[string]bool, len(priority))
	for _, p := range priority {
		if _, ok := items[p]; ok {
			names = append(names, p)
			seen[p] = true
		}
	}
	rest := make([]string, 0, len(items))
	for name := range items {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
