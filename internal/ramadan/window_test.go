package ramadan

import (
	"testing"
	"time"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
)

var dhaka = time.FixedZone("BDT", 6*60*60)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, dhaka)
}

func ptr(t time.Time) *time.Time { return &t }

func TestIsRamadan(t *testing.T) {
	tests := []struct {
		name     string
		override bool
		month    int
		want     bool
	}{
		{"api says ramadan", false, 9, true},
		{"override only", true, 8, true},
		{"both", true, 9, true},
		{"neither", false, 10, false},
		{"no data", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRamadan(tt.override, tt.month); got != tt.want {
				t.Errorf("IsRamadan(%v, %d) = %v, want %v", tt.override, tt.month, got, tt.want)
			}
		})
	}
}

func TestSehriEndAndIftarStart(t *testing.T) {
	if got := SehriEnd(at(5, 7)); !got.Equal(at(4, 57)) {
		t.Errorf("SehriEnd(05:07) = %s, want 04:57", got.Format("15:04"))
	}
	if got := IftarStart(at(17, 55)); !got.Equal(at(17, 55)) {
		t.Errorf("IftarStart(17:55) = %s, want 17:55", got.Format("15:04"))
	}
}

func TestWindow(t *testing.T) {
	d, err := prayer.ParseDaily(api.Timings{
		Fajr: "05:07", Sunrise: "06:23", Dhuhr: "12:09",
		Asr: "16:25", Maghrib: "17:55", Isha: "19:10",
	}, at(0, 0), dhaka)
	if err != nil {
		t.Fatalf("ParseDaily: %v", err)
	}

	sehri, iftar := Window(d)
	if sehri == nil || !sehri.Equal(at(4, 57)) {
		t.Errorf("sehri = %v, want 04:57", sehri)
	}
	if iftar == nil || !iftar.Equal(at(17, 55)) {
		t.Errorf("iftar = %v, want 17:55", iftar)
	}

	if s, i := Window(nil); s != nil || i != nil {
		t.Errorf("Window(nil) = %v, %v; want nil, nil", s, i)
	}
}

func TestSelectCountdown(t *testing.T) {
	sehri := ptr(at(6, 0))
	iftar := ptr(at(18, 0))
	next := prayer.Prayer{Name: "Isha", Time: at(19, 30)}

	tests := []struct {
		name       string
		isRamadan  bool
		sehri      *time.Time
		iftar      *time.Time
		now        time.Time
		wantLabel  string
		wantTarget time.Time
	}{
		{"before sehri", true, sehri, iftar, at(5, 0), LabelSehri, at(6, 0)},
		{"midday fasting", true, sehri, iftar, at(12, 0), LabelIftar, at(18, 0)},
		{"after iftar", true, sehri, iftar, at(19, 0), "Next: Isha", at(19, 30)},
		{"exactly at sehri end falls back", true, sehri, iftar, at(6, 0), "Next: Isha", at(19, 30)},
		{"exactly at iftar falls back", true, sehri, iftar, at(18, 0), "Next: Isha", at(19, 30)},
		{"not ramadan", false, sehri, iftar, at(5, 0), "Next: Isha", at(19, 30)},
		{"no sehri known", true, nil, iftar, at(5, 0), LabelIftar, at(18, 0)},
		{"no iftar known", true, sehri, nil, at(12, 0), "Next: Isha", at(19, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectCountdown(tt.isRamadan, tt.sehri, tt.iftar, next, tt.now)
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
			if !got.Target.Equal(tt.wantTarget) {
				t.Errorf("Target = %s, want %s", got.Target.Format("15:04"), tt.wantTarget.Format("15:04"))
			}
		})
	}
}

func TestCountdown_Prayer(t *testing.T) {
	c := Countdown{Name: "Iftar", Label: LabelIftar, Target: at(17, 55)}
	p := c.Prayer()
	if p.Name != "Iftar" || !p.Time.Equal(at(17, 55)) {
		t.Errorf("Prayer() = %+v", p)
	}
}
