package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var endingTermPattern = regexp.MustCompile(`(?i)^ending<(\d+)d$`)

// Parse builds a filter from a space-separated query string.
//
// Supported terms:
//   - "type:NAME" matches the event type (repeatable)
//   - "ending<Nd" keeps events ending within N days
//   - anything else is a keyword matched against the event name
//
// An empty query yields an empty filter.
func Parse(query string) (*Filter, error) {
	f := NewFilter()

	for _, term := range strings.Fields(query) {
		switch {
		case strings.HasPrefix(strings.ToLower(term), "type:"):
			value := term[len("type:"):]
			if value == "" {
				return nil, fmt.Errorf("empty type in filter term %q", term)
			}
			f.Types = append(f.Types, value)

		case endingTermPattern.MatchString(term):
			matches := endingTermPattern.FindStringSubmatch(term)
			days, err := strconv.Atoi(matches[1])
			if err != nil || days < 1 {
				return nil, fmt.Errorf("invalid day count in filter term %q", term)
			}
			if f.EndingWithinDays > 0 && days != f.EndingWithinDays {
				return nil, fmt.Errorf("conflicting ending< terms in query")
			}
			f.EndingWithinDays = days

		default:
			f.Keywords = append(f.Keywords, term)
		}
	}

	return f, nil
}
