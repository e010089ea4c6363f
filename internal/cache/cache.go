// Package cache provides file-based caching for daily timings, monthly
// calendars and geolocation results.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/geo"
)

const (
	prayerCacheFile   = "timings_%s.json"  // keyed by hash
	calendarCacheFile = "calendar_%s.json" // keyed by hash
	geoCacheFile      = "geolocation.json"
	geoTTL            = 24 * time.Hour
)

// Cache provides file-based caching for prayer times and geolocation data.
type Cache struct {
	dir string
	now func() time.Time
}

// PrayerCacheEntry stores one day's record along with the parameters it was
// fetched for.
type PrayerCacheEntry struct {
	Date   string   `json:"date"` // YYYY-MM-DD
	Method int      `json:"method"`
	School int      `json:"school"`
	Day    api.Data `json:"day"`
}

// CalendarCacheEntry stores one month of daily records.
type CalendarCacheEntry struct {
	Year   int        `json:"year"`
	Month  int        `json:"month"`
	Method int        `json:"method"`
	School int        `json:"school"`
	Days   []api.Data `json:"days"`
}

// GeoCacheEntry stores a cached geolocation result with a timestamp.
type GeoCacheEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// Dir returns the default cache directory.
// It respects $XDG_CACHE_HOME if set, otherwise uses ~/.cache/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "ramadan-pro"), nil
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to Dir().
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := Dir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir, now: time.Now}, nil
}

// Path returns the cache directory.
func (c *Cache) Path() string {
	return c.dir
}

// cacheKey builds a deterministic hash from the parameters that affect prayer times.
// This ensures different locations/methods/schools get separate cache files.
func cacheKey(date string, lat, lon float64, method, school int) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%d|%d", date, lat, lon, method, school)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8]) // 16 hex chars is plenty for uniqueness
}

// calendarKey is cacheKey for a whole month.
func calendarKey(year, month int, lat, lon float64, method, school int) string {
	return cacheKey(fmt.Sprintf("%04d-%02d", year, month), lat, lon, method, school)
}

// LoadTimings attempts to read a cached day for the given parameters.
// Returns nil if the cache is missing or stale (wrong date).
func (c *Cache) LoadTimings(date time.Time, lat, lon float64, method, school int) *PrayerCacheEntry {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(c.dir, fmt.Sprintf(prayerCacheFile, cacheKey(dateStr, lat, lon, method, school)))

	var entry PrayerCacheEntry
	if !readJSON(path, &entry) {
		return nil
	}

	// Validate the date matches -- stale cache for a previous day is useless.
	if entry.Date != dateStr {
		return nil
	}

	return &entry
}

// SaveTimings writes a day's record to the cache.
func (c *Cache) SaveTimings(date time.Time, lat, lon float64, method, school int, resp *api.Response) error {
	dateStr := date.Format("2006-01-02")
	path := filepath.Join(c.dir, fmt.Sprintf(prayerCacheFile, cacheKey(dateStr, lat, lon, method, school)))

	entry := PrayerCacheEntry{
		Date:   dateStr,
		Method: method,
		School: school,
		Day:    resp.Data,
	}
	return writeJSON(path, entry)
}

// LoadCalendar attempts to read a cached month. Returns nil on a miss.
func (c *Cache) LoadCalendar(year, month int, lat, lon float64, method, school int) *CalendarCacheEntry {
	path := filepath.Join(c.dir, fmt.Sprintf(calendarCacheFile, calendarKey(year, month, lat, lon, method, school)))

	var entry CalendarCacheEntry
	if !readJSON(path, &entry) {
		return nil
	}
	if entry.Year != year || entry.Month != month || len(entry.Days) == 0 {
		return nil
	}
	return &entry
}

// SaveCalendar writes a month to the cache.
func (c *Cache) SaveCalendar(year, month int, lat, lon float64, method, school int, resp *api.CalendarResponse) error {
	path := filepath.Join(c.dir, fmt.Sprintf(calendarCacheFile, calendarKey(year, month, lat, lon, method, school)))

	entry := CalendarCacheEntry{
		Year:   year,
		Month:  month,
		Method: method,
		School: school,
		Days:   resp.Data,
	}
	return writeJSON(path, entry)
}

// LoadGeo attempts to read a cached geolocation result.
// Returns nil if the cache is missing or older than the TTL (24 hours).
func (c *Cache) LoadGeo() *geo.Location {
	path := filepath.Join(c.dir, geoCacheFile)

	var entry GeoCacheEntry
	if !readJSON(path, &entry) {
		return nil
	}

	if c.now().Sub(entry.CachedAt) > geoTTL {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	path := filepath.Join(c.dir, geoCacheFile)

	entry := GeoCacheEntry{
		Location: *loc,
		CachedAt: c.now(),
	}
	return writeJSON(path, entry)
}

func readJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}
