// Package ramadan decides what the countdown shows during the fasting month
// and assembles the month's Sehri/Iftar schedule.
package ramadan

import (
	"time"

	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
)

// HijriMonth is the Hijri month number of Ramadan.
const HijriMonth = 9

// SehriMargin is subtracted from Fajr for the live Sehri countdown.
// The schedule table uses ScheduleSehriMargin instead.
const SehriMargin = 10 * time.Minute

// Countdown labels.
const (
	LabelSehri = "Time Left for Sehri"
	LabelIftar = "Time Left for Iftar"
)

// Countdown is the instant the countdown runs toward and its label.
type Countdown struct {
	// Name is "Sehri", "Iftar" or the next prayer's name.
	Name   string
	Label  string
	Target time.Time
}

// Prayer returns the countdown as a prayer.Prayer for formatting.
func (c Countdown) Prayer() prayer.Prayer {
	return prayer.Prayer{Name: c.Name, Time: c.Target}
}

// IsRamadan reports whether Ramadan mode is active. The manual override can
// only switch it on; it never hides a Ramadan date reported by the API.
func IsRamadan(override bool, hijriMonth int) bool {
	return override || hijriMonth == HijriMonth
}

// SehriEnd returns the end of Sehri for a Fajr time.
func SehriEnd(fajr time.Time) time.Time {
	return fajr.Add(-SehriMargin)
}

// IftarStart returns the start of Iftar for a Maghrib time.
func IftarStart(maghrib time.Time) time.Time {
	return maghrib
}

// Window returns today's Sehri end and Iftar start from the daily prayers.
// Either is nil when the corresponding prayer is missing.
func Window(d prayer.Daily) (sehriEnd, iftarStart *time.Time) {
	if fajr, ok := d.Get("Fajr"); ok {
		t := SehriEnd(fajr.Time)
		sehriEnd = &t
	}
	if maghrib, ok := d.Get("Maghrib"); ok {
		t := IftarStart(maghrib.Time)
		iftarStart = &t
	}
	return sehriEnd, iftarStart
}

// SelectCountdown picks the countdown target, evaluated in order:
//
//   - outside Ramadan: the next prayer
//   - before Sehri ends: Sehri
//   - after Sehri and before Iftar: Iftar
//   - otherwise (past Iftar): the next prayer
//
// Sehri and Iftar are always today's; the evening after Iftar relies on the
// next-prayer fallback.
func SelectCountdown(isRamadan bool, sehriEnd, iftarStart *time.Time, next prayer.Prayer, now time.Time) Countdown {
	fallback := Countdown{Name: next.Name, Label: "Next: " + next.Name, Target: next.Time}
	if !isRamadan {
		return fallback
	}

	if sehriEnd != nil && now.Before(*sehriEnd) {
		return Countdown{Name: "Sehri", Label: LabelSehri, Target: *sehriEnd}
	}
	if iftarStart != nil && now.Before(*iftarStart) && (sehriEnd == nil || now.After(*sehriEnd)) {
		return Countdown{Name: "Iftar", Label: LabelIftar, Target: *iftarStart}
	}
	return fallback
}
