package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/geo"
)

const (
	lat = 23.8103
	lon = 90.4125
)

func sampleAPIResponse() *api.Response {
	return &api.Response{
		Code:   200,
		Status: "OK",
		Data: api.Data{
			Timings: api.Timings{
				Fajr:    "05:07",
				Sunrise: "06:23",
				Dhuhr:   "12:09",
				Asr:     "16:25",
				Sunset:  "17:55",
				Maghrib: "17:55",
				Isha:    "19:10",
				Imsak:   "04:57",
			},
			Date: api.DateInfo{
				Hijri: api.HijriDate{Day: "13", Month: api.HijriMonth{Number: 9, En: "Ramaḍān"}, Year: "1447"},
			},
			Meta: api.Meta{
				Latitude:  lat,
				Longitude: lon,
				Timezone:  "Asia/Dhaka",
				Method:    api.MethodInfo{ID: 1, Name: "University of Islamic Sciences, Karachi"},
				School:    "HANAFI",
			},
		},
	}
}

func newCache(t *testing.T) (*Cache, string) {
	t.Helper()
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	return c, dir
}

// ---------------------------------------------------------------------------
// New / Dir
// ---------------------------------------------------------------------------

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "cache")
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("directory %q was not created", dir)
	}
	if c.Path() != dir {
		t.Errorf("Path() = %q, want %q", c.Path(), dir)
	}
}

func TestDir_XDGCacheHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := Dir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-cache", "ramadan-pro"); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

// ---------------------------------------------------------------------------
// SaveTimings / LoadTimings
// ---------------------------------------------------------------------------

func TestTimings_RoundTrip(t *testing.T) {
	c, _ := newCache(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if err := c.SaveTimings(date, lat, lon, 1, 1, sampleAPIResponse()); err != nil {
		t.Fatalf("SaveTimings error: %v", err)
	}

	entry := c.LoadTimings(date, lat, lon, 1, 1)
	if entry == nil {
		t.Fatal("LoadTimings returned nil after save")
	}
	if entry.Day.Timings.Fajr != "05:07" {
		t.Errorf("Fajr = %q, want %q", entry.Day.Timings.Fajr, "05:07")
	}
	if entry.Day.Date.Hijri.Month.Number != 9 {
		t.Errorf("Hijri month = %d, want 9", entry.Day.Date.Hijri.Month.Number)
	}
	if entry.Day.Meta.Timezone != "Asia/Dhaka" {
		t.Errorf("Timezone = %q, want %q", entry.Day.Meta.Timezone, "Asia/Dhaka")
	}
}

func TestTimings_Misses(t *testing.T) {
	c, _ := newCache(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_ = c.SaveTimings(date, lat, lon, 1, 1, sampleAPIResponse())

	tests := []struct {
		name   string
		date   time.Time
		lat    float64
		method int
	}{
		{"next day", date.AddDate(0, 0, 1), lat, 1},
		{"different method", date, lat, 2},
		{"different location", date, 22.3569, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if entry := c.LoadTimings(tt.date, tt.lat, lon, tt.method, 1); entry != nil {
				t.Error("expected cache miss, got entry")
			}
		})
	}
}

func TestTimings_CorruptedFile(t *testing.T) {
	c, dir := newCache(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	_ = c.SaveTimings(date, lat, lon, 1, 1, sampleAPIResponse())

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "timings_") {
			os.WriteFile(filepath.Join(dir, e.Name()), []byte("not-json"), 0o644)
		}
	}

	if entry := c.LoadTimings(date, lat, lon, 1, 1); entry != nil {
		t.Error("expected nil for corrupted cache file, got entry")
	}
}

// ---------------------------------------------------------------------------
// SaveGeo / LoadGeo
// ---------------------------------------------------------------------------

func TestGeo_RoundTrip(t *testing.T) {
	c, _ := newCache(t)
	loc := &geo.Location{
		Latitude:  22.3569,
		Longitude: 91.7832,
		City:      "Chittagong",
		Country:   "Bangladesh",
		Timezone:  "Asia/Dhaka",
	}

	if err := c.SaveGeo(loc); err != nil {
		t.Fatalf("SaveGeo error: %v", err)
	}

	got := c.LoadGeo()
	if got == nil {
		t.Fatal("LoadGeo returned nil after save")
	}
	if got.Latitude != 22.3569 || got.City != "Chittagong" {
		t.Errorf("LoadGeo = %+v", got)
	}
}

func TestGeo_CacheMiss(t *testing.T) {
	c, _ := newCache(t)
	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for geo cache miss, got entry")
	}
}

func TestGeo_ExpiredTTL(t *testing.T) {
	c, dir := newCache(t)

	entry := GeoCacheEntry{
		Location: geo.Location{Latitude: 22.3569, Longitude: 91.7832, City: "Chittagong"},
		CachedAt: time.Now().Add(-25 * time.Hour),
	}
	data, _ := json.Marshal(entry)
	os.WriteFile(filepath.Join(dir, "geolocation.json"), data, 0o644)

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for expired geo cache, got entry")
	}
}

func TestGeo_ClockAdvance(t *testing.T) {
	c, _ := newCache(t)
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return start }
	_ = c.SaveGeo(&geo.Location{City: "Sylhet"})

	c.now = func() time.Time { return start.Add(23 * time.Hour) }
	if c.LoadGeo() == nil {
		t.Error("entry within TTL should hit")
	}
	c.now = func() time.Time { return start.Add(24*time.Hour + time.Minute) }
	if c.LoadGeo() != nil {
		t.Error("entry past TTL should miss")
	}
}

func TestGeo_CorruptedFile(t *testing.T) {
	c, dir := newCache(t)
	os.WriteFile(filepath.Join(dir, "geolocation.json"), []byte("{bad json"), 0o644)

	if got := c.LoadGeo(); got != nil {
		t.Error("expected nil for corrupted geo cache, got entry")
	}
}

// ---------------------------------------------------------------------------
// SaveCalendar / LoadCalendar
// ---------------------------------------------------------------------------

func sampleCalendarResponse(month, days int) *api.CalendarResponse {
	data := make([]api.Data, days)
	for i := 0; i < days; i++ {
		data[i] = api.Data{
			Timings: api.Timings{Fajr: "05:07", Maghrib: "17:55"},
			Date: api.DateInfo{
				Gregorian: api.GregorianDate{
					Date:  fmt.Sprintf("%02d-%02d-2026", i+1, month),
					Day:   fmt.Sprintf("%02d", i+1),
					Month: api.GregorianMonth{Number: month},
					Year:  "2026",
				},
			},
			Meta: api.Meta{Timezone: "Asia/Dhaka"},
		}
	}
	return &api.CalendarResponse{Code: 200, Status: "OK", Data: data}
}

func TestCalendar_RoundTrip(t *testing.T) {
	c, _ := newCache(t)

	if err := c.SaveCalendar(2026, 2, lat, lon, 1, 1, sampleCalendarResponse(2, 28)); err != nil {
		t.Fatalf("SaveCalendar error: %v", err)
	}

	entry := c.LoadCalendar(2026, 2, lat, lon, 1, 1)
	if entry == nil {
		t.Fatal("LoadCalendar returned nil after save")
	}
	if entry.Year != 2026 || entry.Month != 2 {
		t.Errorf("entry = %d-%d, want 2026-2", entry.Year, entry.Month)
	}
	if len(entry.Days) != 28 {
		t.Errorf("Days count = %d, want 28", len(entry.Days))
	}
	if entry.Days[18].Date.Gregorian.Date != "19-02-2026" {
		t.Errorf("Day[18] = %q", entry.Days[18].Date.Gregorian.Date)
	}
}

func TestCalendar_Misses(t *testing.T) {
	c, _ := newCache(t)
	_ = c.SaveCalendar(2026, 2, lat, lon, 1, 1, sampleCalendarResponse(2, 28))

	tests := []struct {
		name        string
		year, month int
		method      int
	}{
		{"different month", 2026, 3, 1},
		{"different year", 2027, 2, 1},
		{"different method", 2026, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if entry := c.LoadCalendar(tt.year, tt.month, lat, lon, tt.method, 1); entry != nil {
				t.Error("expected cache miss, got entry")
			}
		})
	}
}

func TestCalendar_EmptyMonthNotServed(t *testing.T) {
	c, _ := newCache(t)
	_ = c.SaveCalendar(2026, 2, lat, lon, 1, 1, &api.CalendarResponse{Code: 200})

	if entry := c.LoadCalendar(2026, 2, lat, lon, 1, 1); entry != nil {
		t.Error("an empty month should not be served from cache")
	}
}

func TestCalendar_CorruptedFile(t *testing.T) {
	c, dir := newCache(t)
	_ = c.SaveCalendar(2026, 2, lat, lon, 1, 1, sampleCalendarResponse(2, 28))

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "calendar_") {
			os.WriteFile(filepath.Join(dir, e.Name()), []byte("not-json"), 0o644)
		}
	}

	if entry := c.LoadCalendar(2026, 2, lat, lon, 1, 1); entry != nil {
		t.Error("expected nil for corrupted calendar cache file, got entry")
	}
}

// ---------------------------------------------------------------------------
// keys
// ---------------------------------------------------------------------------

func TestCacheKey_Deterministic(t *testing.T) {
	k1 := cacheKey("2026-03-02", lat, lon, 1, 1)
	k2 := cacheKey("2026-03-02", lat, lon, 1, 1)
	if k1 != k2 {
		t.Errorf("cacheKey not deterministic: %q != %q", k1, k2)
	}
	if len(k1) != 16 {
		t.Errorf("cacheKey length = %d, want 16", len(k1))
	}
}

func TestCacheKey_DifferentInputs(t *testing.T) {
	keys := []string{
		cacheKey("2026-03-02", lat, lon, 1, 1),
		cacheKey("2026-03-02", lat, lon, 2, 1),    // different method
		cacheKey("2026-03-02", lat, lon, 1, 0),    // different school
		cacheKey("2026-03-03", lat, lon, 1, 1),    // different date
		cacheKey("2026-03-02", 22.35, 91.78, 1, 1), // different coords
		calendarKey(2026, 3, lat, lon, 1, 1),
		calendarKey(2027, 3, lat, lon, 1, 1),
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate cache key: %q", k)
		}
		seen[k] = true
	}
}
