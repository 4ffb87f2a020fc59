package quotations

import (
	"fmt"
	"regexp"
	"strconv"
)

var digitsPattern = regexp.MustCompile(`\d+`)

// NextNumber computes the next quotation number from the set of numbers
// already persisted. The first run of digits in each entry is taken as its
// numeric value; entries without one are legacy garbage and are skipped.
// The result is the maximum plus one, zero-padded to five digits, starting
// at "00001" when nothing parseable exists. Numbers are never reused, even
// after a deletion, because the maximum only grows.
func NextNumber(existing []string) string {
	highest := 0
	found := false

	for _, raw := range existing {
		match := digitsPattern.FindString(raw)
		if match == "" {
			continue
		}

		value, err := strconv.Atoi(match)
		if err != nil {
			// Only reachable on absurdly long digit runs; skip like any
			// other unparseable entry.
			continue
		}

		found = true
		if value > highest {
			highest = value
		}
	}

	if !found {
		return "00001"
	}

	return fmt.Sprintf("%05d", highest+1)
}
