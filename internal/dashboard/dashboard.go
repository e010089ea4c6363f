// Package dashboard loads a day of prayer data and derives the home view
// from it. The CLI, the watch loop and the interactive UI all read the same
// Snapshot.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
	"github.com/smokyabdulrahman/ramadan-pro/internal/ramadan"
)

// DaySource returns one day's record for a pair of coordinates.
type DaySource interface {
	FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*api.Response, error)
}

// Day is one fetched day: the raw record and its parsed prayers.
type Day struct {
	// Date is midnight of the day in Location.
	Date     time.Time
	Location *time.Location
	Data     api.Data
	Prayers  prayer.Daily
}

// LoadDay fetches the record for now's date at the settings' location.
// The date is the one at the location: when the host's calendar day differs
// from the day in the timezone the API reports, the location's day is fetched
// instead.
func LoadDay(ctx context.Context, src DaySource, s *config.Settings, now time.Time) (*Day, error) {
	resp, err := fetchDay(ctx, src, s, now)
	if err != nil {
		return nil, err
	}

	local := now.In(Timezone(resp.Data.Meta.Timezone))
	if local.Format(requestDate) != now.Format(requestDate) {
		log.Debug().
			Str("host_date", now.Format(requestDate)).
			Str("location_date", local.Format(requestDate)).
			Msg("refetching for the location's date")
		if resp, err = fetchDay(ctx, src, s, local); err != nil {
			return nil, err
		}
	}
	return NewDay(resp.Data, now)
}

// requestDate is the date layout the API is queried with.
const requestDate = "02-01-2006"

func fetchDay(ctx context.Context, src DaySource, s *config.Settings, date time.Time) (*api.Response, error) {
	return src.FetchByCoordinates(ctx, date,
		s.Location.Latitude, s.Location.Longitude,
		s.MethodOrDefault(api.DefaultMethod), s.SchoolOrDefault(api.DefaultSchool))
}

// NewDay parses data as the record for now's date in the record's timezone.
func NewDay(data api.Data, now time.Time) (*Day, error) {
	loc := Timezone(data.Meta.Timezone)
	local := now.In(loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	prayers, err := prayer.ParseDaily(data.Timings, date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrUnavailable, err)
	}
	return &Day{Date: date, Location: loc, Data: data, Prayers: prayers}, nil
}

// Timezone resolves an IANA name, falling back to the local zone.
func Timezone(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("timezone", name).Msg("unknown timezone, using local time")
		return time.Local
	}
	return loc
}

// Stale reports whether now falls on a later calendar day than d.
func (d *Day) Stale(now time.Time) bool {
	local := now.In(d.Location)
	y, m, dd := d.Date.Date()
	ny, nm, nd := local.Date()
	return y != ny || m != nm || dd != nd
}

// alarmLookback is how far back the alarm target is derived. The alarm
// window closes a minute after its opening, so a prayer that began within the
// last minute is still the one an offset of zero refers to.
const alarmLookback = time.Minute

// Snapshot is the derived home view state at one instant. It is recomputed
// from scratch on every tick.
type Snapshot struct {
	Now     time.Time
	Current string
	Next    prayer.Prayer

	// Alarm is the prayer the notification trigger evaluates: the next
	// prayer as of one minute ago.
	Alarm prayer.Prayer

	IsRamadan  bool
	SehriEnd   *time.Time
	IftarStart *time.Time
	Countdown  ramadan.Countdown
}

// Snapshot derives the state at now. override is the manual Ramadan flag.
func (d *Day) Snapshot(override bool, now time.Time) Snapshot {
	now = now.In(d.Location)
	der := prayer.Derive(d.Prayers, now)
	isRamadan := ramadan.IsRamadan(override, d.Data.Date.Hijri.Month.Number)
	sehri, iftar := ramadan.Window(d.Prayers)

	return Snapshot{
		Now:        now,
		Current:    der.Current,
		Next:       der.Next,
		Alarm:      prayer.Derive(d.Prayers, now.Add(-alarmLookback)).Next,
		IsRamadan:  isRamadan,
		SehriEnd:   sehri,
		IftarStart: iftar,
		Countdown:  ramadan.SelectCountdown(isRamadan, sehri, iftar, der.Next, now),
	}
}

// Remaining renders the countdown as HH:MM:SS.
func (s Snapshot) Remaining() string {
	return prayer.FormatCountdown(s.Countdown.Target, s.Now)
}
