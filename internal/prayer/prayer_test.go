package prayer

import (
	"testing"
	"time"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
)

// dhaka is a fixed +06:00 zone so tests don't depend on tzdata.
var dhaka = time.FixedZone("BDT", 6*60*60)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, dhaka)
}

func sampleTimings() api.Timings {
	return api.Timings{
		Fajr:    "05:07",
		Sunrise: "06:23",
		Dhuhr:   "12:09",
		Asr:     "16:25",
		Sunset:  "17:55",
		Maghrib: "17:55",
		Isha:    "19:10",
		Imsak:   "04:57",
	}
}

func sampleDaily(t *testing.T) Daily {
	t.Helper()
	d, err := ParseDaily(sampleTimings(), at(0, 0), dhaka)
	if err != nil {
		t.Fatalf("ParseDaily: %v", err)
	}
	return d
}

// ---------------------------------------------------------------------------
// ParseClock
// ---------------------------------------------------------------------------

func TestParseClock(t *testing.T) {
	date := at(0, 0)

	tests := []struct {
		name    string
		raw     string
		wantH   int
		wantM   int
		wantErr bool
	}{
		{"simple HH:MM", "17:55", 17, 55, false},
		{"midnight", "00:00", 0, 0, false},
		{"with timezone suffix", "05:07 (+06)", 5, 7, false},
		{"with spaces and suffix", "  05:07  (BDT) ", 5, 7, false},
		{"invalid format", "bad", 0, 0, true},
		{"empty string", "", 0, 0, true},
		{"missing minute", "15:", 0, 0, true},
		{"non-numeric", "ab:cd", 0, 0, true},
		{"hour out of range", "24:10", 0, 0, true},
		{"minute out of range", "10:60", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.raw, date, dhaka)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) expected error, got nil", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Hour() != tt.wantH || got.Minute() != tt.wantM {
				t.Errorf("ParseClock(%q) = %02d:%02d, want %02d:%02d",
					tt.raw, got.Hour(), got.Minute(), tt.wantH, tt.wantM)
			}
			if got.Year() != 2026 || got.Month() != 3 || got.Day() != 2 {
				t.Errorf("ParseClock(%q) wrong date: got %v", tt.raw, got.Format("2006-01-02"))
			}
			if got.Location() != dhaka {
				t.Errorf("ParseClock(%q) location = %v, want %v", tt.raw, got.Location(), dhaka)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ParseDaily
// ---------------------------------------------------------------------------

func TestParseDaily_Order(t *testing.T) {
	d := sampleDaily(t)
	if len(d) != len(Order) {
		t.Fatalf("expected %d prayers, got %d", len(Order), len(d))
	}
	for i, name := range Order {
		if d[i].Name != name {
			t.Errorf("daily[%d].Name = %q, want %q", i, d[i].Name, name)
		}
	}
}

func TestParseDaily_Malformed(t *testing.T) {
	timings := sampleTimings()
	timings.Asr = "late afternoon"

	if _, err := ParseDaily(timings, at(0, 0), dhaka); err == nil {
		t.Fatal("expected error for malformed Asr, got nil")
	}
}

func TestDaily_Get(t *testing.T) {
	d := sampleDaily(t)

	p, ok := d.Get("Maghrib")
	if !ok || !p.Time.Equal(at(17, 55)) {
		t.Errorf("Get(Maghrib) = %v, %v", p, ok)
	}
	if _, ok := d.Get("Sunset"); ok {
		t.Error("Get(Sunset) should not be found in the daily list")
	}
}

// ---------------------------------------------------------------------------
// Derive
// ---------------------------------------------------------------------------

func TestDerive(t *testing.T) {
	d := sampleDaily(t)

	tests := []struct {
		name        string
		now         time.Time
		wantCurrent string
		wantNext    string
		wantAt      time.Time
	}{
		{"before fajr", at(3, 0), "Isha", "Fajr", at(5, 7)},
		{"just after midnight", at(0, 1), "Isha", "Fajr", at(5, 7)},
		{"between fajr and sunrise", at(5, 30), "Fajr", "Sunrise", at(6, 23)},
		{"between dhuhr and asr", at(14, 17), "Dhuhr", "Asr", at(16, 25)},
		{"exactly at dhuhr", at(12, 9), "Dhuhr", "Asr", at(16, 25)},
		{"between maghrib and isha", at(18, 30), "Maghrib", "Isha", at(19, 10)},
		{"after isha", at(22, 0), "Isha", "Fajr", at(5, 7).AddDate(0, 0, 1)},
		{"exactly at isha", at(19, 10), "Isha", "Fajr", at(5, 7).AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(d, tt.now)
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %q, want %q", got.Current, tt.wantCurrent)
			}
			if got.Next.Name != tt.wantNext {
				t.Errorf("Next.Name = %q, want %q", got.Next.Name, tt.wantNext)
			}
			if !got.Next.Time.Equal(tt.wantAt) {
				t.Errorf("Next.Time = %v, want %v", got.Next.Time, tt.wantAt)
			}
		})
	}
}

func TestDerive_NextAlwaysInFuture(t *testing.T) {
	d := sampleDaily(t)

	for m := 0; m < 24*60; m++ {
		now := at(0, 0).Add(time.Duration(m) * time.Minute)
		got := Derive(d, now)
		if !got.Next.Time.After(now) {
			t.Fatalf("at %s next %s (%s) is not in the future",
				now.Format("15:04"), got.Next.Name, got.Next.Time.Format(time.RFC3339))
		}

		// Current must be the entry before Next in the fixed order, wrapping to Isha.
		idx := -1
		for i, name := range Order {
			if name == got.Next.Name {
				idx = i
			}
		}
		want := Order[len(Order)-1]
		if idx > 0 {
			want = Order[idx-1]
		}
		if got.Current != want {
			t.Fatalf("at %s current = %q, want %q", now.Format("15:04"), got.Current, want)
		}
	}
}

func TestDerive_TomorrowFajrKeepsClockTime(t *testing.T) {
	d := sampleDaily(t)

	got := Derive(d, at(23, 59))
	if got.Next.Time.Day() != 3 || got.Next.Time.Hour() != 5 || got.Next.Time.Minute() != 7 {
		t.Errorf("tomorrow's Fajr = %v, want 2026-03-03 05:07", got.Next.Time)
	}
}

func TestDerive_Empty(t *testing.T) {
	got := Derive(nil, at(12, 0))
	if got.Current != "" || got.Next.Name != "" {
		t.Errorf("Derive(nil) = %+v, want zero value", got)
	}
}

// ---------------------------------------------------------------------------
// Remaining / countdown
// ---------------------------------------------------------------------------

func TestTimeRemaining(t *testing.T) {
	p := Prayer{Name: "Asr", Time: at(16, 25)}

	if d := TimeRemaining(p, at(14, 25)); d != 2*time.Hour {
		t.Errorf("TimeRemaining = %v, want 2h", d)
	}
	if d := TimeRemaining(p, at(17, 0)); d >= 0 {
		t.Errorf("expected negative duration, got %v", d)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"hours and minutes", 2*time.Hour + 15*time.Minute, "2h 15m"},
		{"only minutes", 45 * time.Minute, "45m"},
		{"exactly one hour", 1 * time.Hour, "1h 0m"},
		{"zero", 0, "0m"},
		{"negative", -30 * time.Minute, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRemaining(tt.duration); got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	target := at(17, 55)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"hours minutes seconds", at(15, 30).Add(-5 * time.Second), "02:25:05"},
		{"under a minute", target.Add(-42 * time.Second), "00:00:42"},
		{"at target", target, "00:00:00"},
		{"past target", target.Add(time.Minute), "00:00:00"},
		{"more than a day", target.AddDate(0, 0, -1).Add(-time.Hour), "25:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCountdown(target, tt.now); got != tt.want {
				t.Errorf("FormatCountdown = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShortNames(t *testing.T) {
	for _, name := range Order {
		if _, ok := ShortNames[name]; !ok {
			t.Errorf("ShortNames missing entry for %q", name)
		}
	}
}
