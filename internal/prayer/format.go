package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Format constants for the single-line output of the next command.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatLabelCountdown     = "countdown"
	FormatFull               = "full"
)

// Formats lists the built-in modes in the order they are documented.
var Formats = []string{
	FormatTimeRemaining, FormatNextPrayerTime, FormatNameAndTime,
	FormatNameAndRemaining, FormatShortNameAndTime, FormatShortNameAndRemain,
	FormatLabelCountdown, FormatFull,
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // Target name, e.g. "Asr" or "Iftar"
	ShortName string // Abbreviated name, e.g. "A"; the full name when none exists
	Label     string // Countdown label, e.g. "Time Left for Iftar"
	Time      string // Formatted target time, e.g. "15:02" or "3:02 PM"
	Remaining string // e.g. "2h 15m"
	Countdown string // e.g. "02:15:09"
	Hours     int
	Minutes   int
}

// FormatOutput formats a countdown target for display according to mode.
// timeFormat should be "15:04" for 24h or "3:04 PM" for 12h.
//
// If mode contains "{{", it is treated as a custom Go template string with
// the fields of FormatData, e.g. "{{.Label}} {{.Countdown}}".
func FormatOutput(p Prayer, label string, now time.Time, mode string, timeFormat string) string {
	d := TimeRemaining(p, now)
	remaining := FormatRemaining(d)
	timeStr := p.Time.Format(timeFormat)
	short, ok := ShortNames[p.Name]
	if !ok {
		short = p.Name
	}

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      p.Name,
			ShortName: short,
			Label:     label,
			Time:      timeStr,
			Remaining: remaining,
			Countdown: FormatCountdown(p.Time, now),
			Hours:     int(d.Hours()),
			Minutes:   int(d.Minutes()) % 60,
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextPrayerTime:
		return timeStr
	case FormatNameAndTime:
		return fmt.Sprintf("%s %s", p.Name, timeStr)
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", p.Name, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, timeStr)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatLabelCountdown:
		return fmt.Sprintf("%s %s", label, FormatCountdown(p.Time, now))
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", p.Name, timeStr, remaining)
	default:
		return fmt.Sprintf("%s %s", p.Name, timeStr)
	}
}

func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
