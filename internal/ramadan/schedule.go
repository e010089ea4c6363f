package ramadan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
)

// Schedule defaults: a 30-day window starting 19 February.
const (
	DefaultStartDay   = 19
	DefaultStartMonth = 2
	DefaultTotalDays  = 30
)

// ScheduleSehriMargin is subtracted from Fajr in the schedule table.
// It differs from the live countdown's SehriMargin.
const ScheduleSehriMargin = 5 * time.Minute

// CalendarSource returns one month of daily records.
type CalendarSource interface {
	FetchCalendarByCoordinates(ctx context.Context, year, month int, lat, lon float64, method, school int) (*api.CalendarResponse, error)
}

// ScheduleRequest describes the window to fetch and assemble.
type ScheduleRequest struct {
	Latitude   float64
	Longitude  float64
	Method     int
	School     int
	Year       int
	StartDay   int
	StartMonth int
	TotalDays  int
}

// Row is one day of the rendered schedule.
type Row struct {
	Index    int // 1-based day of the fast
	Date     time.Time
	Weekday  string
	SehriEnd time.Time
	Iftar    time.Time
	IsFriday bool
	IsToday  bool
}

// AssembleSchedule returns up to totalDays consecutive records starting at the
// first record dated (startMonth, startDay). It returns an empty slice when no
// record matches.
func AssembleSchedule(days []api.Data, startDay, startMonth, totalDays int) []api.Data {
	start := -1
	for i, d := range days {
		g := d.Date.Gregorian
		if g.Month.Number == startMonth && g.DayOfMonth() == startDay {
			start = i
			break
		}
	}
	if start == -1 || totalDays <= 0 {
		return []api.Data{}
	}

	end := start + totalDays
	if end > len(days) {
		end = len(days)
	}
	out := make([]api.Data, end-start)
	copy(out, days[start:end])
	return out
}

// FetchSchedule fetches the start month and the month after it concurrently
// and assembles the window. A month that fails to load contributes no records,
// so a total failure yields an empty schedule rather than an error.
func FetchSchedule(ctx context.Context, src CalendarSource, req ScheduleRequest) []api.Data {
	first := time.Date(req.Year, time.Month(req.StartMonth), 1, 0, 0, 0, 0, time.UTC)
	months := []time.Time{first, first.AddDate(0, 1, 0)}

	results := make([][]api.Data, len(months))
	var wg sync.WaitGroup
	for i, m := range months {
		wg.Add(1)
		go func(i int, m time.Time) {
			defer wg.Done()
			resp, err := src.FetchCalendarByCoordinates(ctx, m.Year(), int(m.Month()), req.Latitude, req.Longitude, req.Method, req.School)
			if err != nil {
				log.Warn().Err(err).Int("year", m.Year()).Int("month", int(m.Month())).Msg("calendar month unavailable")
				return
			}
			results[i] = resp.Data
		}(i, m)
	}
	wg.Wait()

	var all []api.Data
	for _, r := range results {
		all = append(all, r...)
	}
	return AssembleSchedule(all, req.StartDay, req.StartMonth, req.TotalDays)
}

// ScheduleRows derives the displayed values for each record. today marks the
// matching row; its date is compared in loc.
func ScheduleRows(days []api.Data, loc *time.Location, today time.Time) ([]Row, error) {
	todayKey := today.In(loc).Format("02-01-2006")

	rows := make([]Row, 0, len(days))
	for i, d := range days {
		g := d.Date.Gregorian
		date, err := time.ParseInLocation("02-01-2006", g.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid gregorian date %q: %w", g.Date, err)
		}
		fajr, err := prayer.ParseClock(d.Timings.Fajr, date, loc)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", g.Date, err)
		}
		maghrib, err := prayer.ParseClock(d.Timings.Maghrib, date, loc)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", g.Date, err)
		}

		weekday := g.Weekday.En
		if weekday == "" {
			weekday = date.Weekday().String()
		}

		rows = append(rows, Row{
			Index:    i + 1,
			Date:     date,
			Weekday:  weekday,
			SehriEnd: fajr.Add(-ScheduleSehriMargin),
			Iftar:    maghrib,
			IsFriday: weekday == time.Friday.String(),
			IsToday:  g.Date == todayKey,
		})
	}
	return rows, nil
}
