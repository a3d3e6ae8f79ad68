package combatlog

import "fmt"

// Order is the display order of a history. Histories are always stored
// oldest-first; Order only affects rendering.
type Order string

const (
	NewestFirst Order = "newest"
	OldestFirst Order = "oldest"
)

// ParseOrder accepts "newest" or "oldest". The empty string means NewestFirst.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", NewestFirst:
		return NewestFirst, nil
	case OldestFirst:
		return OldestFirst, nil
	}
	return "", fmt.Errorf("unknown order %q (want newest or oldest)", s)
}

// Ordered returns a copy of events arranged for display.
func Ordered(events []Event, o Order) []Event {
	out := make([]Event, len(events))
	if o == OldestFirst {
		copy(out, events)
		return out
	}
	for i, e := range events {
		out[len(events)-1-i] = e
	}
	return out
}
