// Package tracker records, per calendar day, whether the fast (roza) and the
// night prayer (taraweeh) were completed.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownField is returned for a field other than roza or taraweeh.
var ErrUnknownField = errors.New("unknown tracker field")

// DateLayout formats the natural key of an entry, e.g. "Mon Mar 02 2026".
const DateLayout = "Mon Jan 02 2006"

// Field names one of the two tracked booleans.
type Field string

const (
	Roza     Field = "roza"
	Taraweeh Field = "taraweeh"
)

// ParseField parses a field name, ignoring case.
func ParseField(s string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(s))) {
	case Roza:
		return Roza, nil
	case Taraweeh:
		return Taraweeh, nil
	}
	return "", fmt.Errorf("%w %q: must be roza or taraweeh", ErrUnknownField, s)
}

// Entry is one day's record.
type Entry struct {
	Date     string `db:"date" json:"date"`
	Roza     bool   `db:"roza" json:"roza"`
	Taraweeh bool   `db:"taraweeh" json:"taraweeh"`
}

// DateKey returns the key of the calendar day containing t.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Find returns the entry for dateKey.
func Find(entries []Entry, dateKey string) (Entry, bool) {
	for _, e := range entries {
		if e.Date == dateKey {
			return e, true
		}
	}
	return Entry{Date: dateKey}, false
}

// Toggle flips field for dateKey. Any existing entry for the date is removed
// and the flipped copy is appended; a missing entry starts with both fields
// false. The input slice is not modified.
func Toggle(entries []Entry, dateKey string, field Field) ([]Entry, error) {
	if field != Roza && field != Taraweeh {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, field)
	}

	current, _ := Find(entries, dateKey)
	switch field {
	case Roza:
		current.Roza = !current.Roza
	case Taraweeh:
		current.Taraweeh = !current.Taraweeh
	}

	out := make([]Entry, 0, len(entries)+1)
	for _, e := range entries {
		if e.Date != dateKey {
			out = append(out, e)
		}
	}
	return append(out, current), nil
}

// RozaCount returns the number of days with a completed fast.
func RozaCount(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Roza {
			n++
		}
	}
	return n
}

// TaraweehCount returns the number of nights with taraweeh completed.
func TaraweehCount(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Taraweeh {
			n++
		}
	}
	return n
}

// Counter is the tasbih tap counter. It lives for the session only.
type Counter struct {
	n int
}

// Tap increments the counter and returns the new count.
func (c *Counter) Tap() int {
	c.n++
	return c.n
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	c.n = 0
}

// Count returns the current count.
func (c *Counter) Count() int {
	return c.n
}
