package prayer

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
)

// Prayer represents a single prayer with its name and time.
type Prayer struct {
	Name string
	Time time.Time
}

// Order is the fixed daily order the deriver scans.
var Order = []string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

// ShortNames maps full prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Sunrise": "S",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Maghrib": "M",
	"Isha":    "I",
}

// Daily is one calendar day's prayers in Order.
type Daily []Prayer

// Derivation is the result of Derive.
type Derivation struct {
	// Current is the prayer whose period we are in. Before Fajr this is Isha.
	Current string
	// Next is always strictly after the instant it was derived for.
	Next Prayer
}

// ParseDaily converts API timings into a Daily for the given date.
// The location is used to construct time.Time values in the API's timezone.
func ParseDaily(timings api.Timings, date time.Time, loc *time.Location) (Daily, error) {
	daily := make(Daily, 0, len(Order))
	for _, name := range Order {
		raw, _ := timings.Lookup(name)
		t, err := ParseClock(raw, date, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time for %s (%q): %w", name, raw, err)
		}
		daily = append(daily, Prayer{Name: name, Time: t})
	}
	return daily, nil
}

// Get returns the prayer with the given name.
func (d Daily) Get(name string) (Prayer, bool) {
	for _, p := range d {
		if p.Name == name {
			return p, true
		}
	}
	return Prayer{}, false
}

// Derive determines the current and next prayer relative to now.
//
// Next is the first prayer strictly after now. Current is the one before it,
// or Isha when Next is Fajr. Once Isha has passed, Next is Fajr's clock time
// on the following calendar day and Current stays Isha.
func Derive(d Daily, now time.Time) Derivation {
	if len(d) == 0 {
		return Derivation{}
	}
	last := d[len(d)-1].Name

	for i, p := range d {
		if p.Time.After(now) {
			current := last
			if i > 0 {
				current = d[i-1].Name
			}
			return Derivation{Current: current, Next: p}
		}
	}

	first := d[0]
	return Derivation{
		Current: last,
		Next:    Prayer{Name: first.Name, Time: first.Time.AddDate(0, 0, 1)},
	}
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatCountdown renders the time left until target as HH:MM:SS.
// A target at or before now renders as "00:00:00".
func FormatCountdown(target, now time.Time) string {
	diff := target.Sub(now)
	if diff <= 0 {
		return "00:00:00"
	}
	total := int(diff / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// ParseClock parses a time string like "05:07" or "05:07 (+06)" into a
// time.Time on the given date in the given location.
func ParseClock(raw string, date time.Time, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %q", raw)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return time.Time{}, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return time.Time{}, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %q", raw)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, min, 0, 0, loc), nil
}
