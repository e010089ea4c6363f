package ramadan

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
)

// monthData builds one record per day of the given month.
func monthData(year, month int) []api.Data {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var out []api.Data
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		out = append(out, api.Data{
			Timings: api.Timings{Fajr: "05:07 (+06)", Maghrib: "17:55 (+06)"},
			Date: api.DateInfo{
				Gregorian: api.GregorianDate{
					Date:    d.Format("02-01-2006"),
					Day:     fmt.Sprintf("%02d", d.Day()),
					Weekday: api.Weekday{En: d.Weekday().String()},
					Month:   api.GregorianMonth{Number: month, En: d.Month().String()},
					Year:    fmt.Sprintf("%d", year),
				},
			},
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// AssembleSchedule
// ---------------------------------------------------------------------------

func TestAssembleSchedule_SpansIntoNextMonth(t *testing.T) {
	all := append(monthData(2026, 2), monthData(2026, 3)...)

	got := AssembleSchedule(all, 19, 2, 30)
	if len(got) != 30 {
		t.Fatalf("got %d records, want 30", len(got))
	}
	if got[0].Date.Gregorian.Date != "19-02-2026" {
		t.Errorf("first = %s, want 19-02-2026", got[0].Date.Gregorian.Date)
	}
	// 19 Feb + 29 days = 20 Mar in a non-leap year.
	if got[29].Date.Gregorian.Date != "20-03-2026" {
		t.Errorf("last = %s, want 20-03-2026", got[29].Date.Gregorian.Date)
	}
}

func TestAssembleSchedule_LeapYear(t *testing.T) {
	all := append(monthData(2028, 2), monthData(2028, 3)...)

	got := AssembleSchedule(all, 19, 2, 30)
	if len(got) != 30 {
		t.Fatalf("got %d records, want 30", len(got))
	}
	if got[29].Date.Gregorian.Date != "19-03-2028" {
		t.Errorf("last = %s, want 19-03-2028", got[29].Date.Gregorian.Date)
	}
}

func TestAssembleSchedule_AnchorAbsent(t *testing.T) {
	all := append(monthData(2026, 4), monthData(2026, 5)...)

	got := AssembleSchedule(all, 19, 2, 30)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
	if got := AssembleSchedule(nil, 19, 2, 30); len(got) != 0 {
		t.Errorf("expected empty slice for no data, got %d records", len(got))
	}
}

func TestAssembleSchedule_Truncated(t *testing.T) {
	// Only February is available: the window runs off the end.
	got := AssembleSchedule(monthData(2026, 2), 19, 2, 30)
	if len(got) != 10 {
		t.Errorf("got %d records, want 10 (19..28 Feb)", len(got))
	}
}

func TestAssembleSchedule_DoesNotAlias(t *testing.T) {
	all := monthData(2026, 2)
	got := AssembleSchedule(all, 1, 2, 3)
	got[0].Timings.Fajr = "changed"
	if all[0].Timings.Fajr == "changed" {
		t.Error("AssembleSchedule result aliases its input")
	}
}

// ---------------------------------------------------------------------------
// FetchSchedule
// ---------------------------------------------------------------------------

type fakeCalendar struct {
	mu    sync.Mutex
	calls []string
	fail  map[int]bool
}

func (f *fakeCalendar) FetchCalendarByCoordinates(ctx context.Context, year, month int, lat, lon float64, method, school int) (*api.CalendarResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("%d-%02d", year, month))
	f.mu.Unlock()
	if f.fail[month] {
		return nil, fmt.Errorf("%w: boom", api.ErrUnavailable)
	}
	return &api.CalendarResponse{Code: 200, Data: monthData(year, month)}, nil
}

func TestFetchSchedule(t *testing.T) {
	src := &fakeCalendar{}
	got := FetchSchedule(context.Background(), src, ScheduleRequest{
		Year: 2026, StartDay: 19, StartMonth: 2, TotalDays: 30,
		Method: 1, School: 1,
	})
	if len(got) != 30 {
		t.Fatalf("got %d records, want 30", len(got))
	}
	if len(src.calls) != 2 {
		t.Errorf("expected 2 month fetches, got %v", src.calls)
	}
}

func TestFetchSchedule_DecemberRollsIntoJanuary(t *testing.T) {
	src := &fakeCalendar{}
	got := FetchSchedule(context.Background(), src, ScheduleRequest{
		Year: 2026, StartDay: 20, StartMonth: 12, TotalDays: 30,
	})
	if len(got) != 30 {
		t.Fatalf("got %d records, want 30", len(got))
	}
	seen := map[string]bool{}
	for _, c := range src.calls {
		seen[c] = true
	}
	if !seen["2026-12"] || !seen["2027-01"] {
		t.Errorf("expected Dec 2026 and Jan 2027 fetches, got %v", src.calls)
	}
}

func TestFetchSchedule_StartMonthUnavailable(t *testing.T) {
	src := &fakeCalendar{fail: map[int]bool{2: true}}
	got := FetchSchedule(context.Background(), src, ScheduleRequest{
		Year: 2026, StartDay: 19, StartMonth: 2, TotalDays: 30,
	})
	if len(got) != 0 {
		t.Errorf("expected empty schedule, got %d records", len(got))
	}
}

// ---------------------------------------------------------------------------
// ScheduleRows
// ---------------------------------------------------------------------------

func TestScheduleRows(t *testing.T) {
	days := AssembleSchedule(append(monthData(2026, 2), monthData(2026, 3)...), 19, 2, 30)
	today := time.Date(2026, 2, 20, 12, 0, 0, 0, dhaka)

	rows, err := ScheduleRows(days, dhaka, today)
	if err != nil {
		t.Fatalf("ScheduleRows: %v", err)
	}
	if len(rows) != 30 {
		t.Fatalf("got %d rows, want 30", len(rows))
	}

	first := rows[0]
	if first.Index != 1 {
		t.Errorf("Index = %d, want 1", first.Index)
	}
	if first.SehriEnd.Format("15:04") != "05:02" {
		t.Errorf("SehriEnd = %s, want 05:02 (Fajr - 5m)", first.SehriEnd.Format("15:04"))
	}
	if first.Iftar.Format("15:04") != "17:55" {
		t.Errorf("Iftar = %s, want 17:55", first.Iftar.Format("15:04"))
	}
	if first.Weekday != "Thursday" || first.IsFriday {
		t.Errorf("19 Feb 2026 weekday = %q friday=%v", first.Weekday, first.IsFriday)
	}
	if !rows[1].IsFriday || !rows[1].IsToday {
		t.Errorf("20 Feb 2026 should be Friday and today: %+v", rows[1])
	}

	todays := 0
	for _, r := range rows {
		if r.IsToday {
			todays++
		}
	}
	if todays != 1 {
		t.Errorf("expected exactly one today row, got %d", todays)
	}
}

func TestScheduleRows_BadDate(t *testing.T) {
	days := []api.Data{{
		Timings: api.Timings{Fajr: "05:00", Maghrib: "18:00"},
		Date:    api.DateInfo{Gregorian: api.GregorianDate{Date: "2026/02/19"}},
	}}
	if _, err := ScheduleRows(days, dhaka, time.Now()); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestScheduleRows_UsesTableMargin(t *testing.T) {
	days := []api.Data{{
		Timings: api.Timings{Fajr: "05:00", Maghrib: "18:00"},
		Date:    api.DateInfo{Gregorian: api.GregorianDate{Date: "02-03-2026"}},
	}}
	rows, err := ScheduleRows(days, dhaka, time.Now())
	if err != nil {
		t.Fatalf("ScheduleRows: %v", err)
	}
	live := SehriEnd(at(5, 0))
	if rows[0].SehriEnd.Equal(live) {
		t.Errorf("table Sehri end %s matches the live countdown margin", rows[0].SehriEnd.Format("15:04"))
	}
	if got := rows[0].SehriEnd.Format("15:04"); got != "04:55" {
		t.Errorf("SehriEnd = %s, want 04:55", got)
	}
}
