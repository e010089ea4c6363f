// Package config provides the persistent settings store.
//
// Settings are stored as JSON at ~/.config/ramadan-pro/settings.json
// (XDG-compliant). The merge priority is: CLI flags > settings file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/geo"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
)

const (
	configDirName  = "ramadan-pro"
	configFileName = "settings.json"
)

// ErrMalformed is returned alongside usable defaults when the settings file
// exists but cannot be parsed.
var ErrMalformed = errors.New("malformed settings file")

// Offsets are the allowed notification offsets in minutes.
var Offsets = []int{0, 5, 10}

// ValidKeys lists all keys that can be set via `settings set`.
var ValidKeys = []string{
	"latitude", "longitude",
	"location_name",
	"offset",
	"ramadan_override",
	"method", "school",
	"time_format",
	"cache_dir",
}

// Location is a pair of coordinates in degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Settings holds all user-configurable state.
type Settings struct {
	Location           Location        `json:"location"`
	LocationName       string          `json:"location_name"`
	Notifications      map[string]bool `json:"notifications"`
	NotificationOffset int             `json:"notification_offset"`
	IsRamadanOverride  bool            `json:"is_ramadan_override"`

	Method     *int   `json:"method,omitempty"` // pointer so we can distinguish "not set" from 0
	School     *int   `json:"school,omitempty"`
	TimeFormat string `json:"time_format,omitempty"` // "12h" or "24h"
	CacheDir   string `json:"cache_dir,omitempty"`
}

// Defaults returns the first-run settings: Dhaka, alarms on for the five
// obligatory prayers, no offset.
func Defaults() Settings {
	method := api.DefaultMethod
	school := api.DefaultSchool
	return Settings{
		Location: Location{
			Latitude:  geo.DefaultDistrict.Latitude,
			Longitude: geo.DefaultDistrict.Longitude,
		},
		LocationName: geo.DefaultDistrict.Name,
		Notifications: map[string]bool{
			"Fajr":    true,
			"Sunrise": false,
			"Dhuhr":   true,
			"Asr":     true,
			"Maghrib": true,
			"Isha":    true,
		},
		Method:     &method,
		School:     &school,
		TimeFormat: "24h",
	}
}

// IsDefaultLocation reports whether the coordinates are still the first-run
// ones, which is when auto-location is attempted.
func (s *Settings) IsDefaultLocation() bool {
	d := Defaults()
	return s.Location == d.Location
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the settings file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the settings file from disk.
func Load() (*Settings, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFrom(path)
}

// LoadFrom reads settings from a specific path, merged over Defaults.
// A missing file yields the defaults. A file that cannot be parsed yields the
// defaults together with an error wrapping ErrMalformed.
func LoadFrom(path string) (*Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &s, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var stored Settings
	if err := json.Unmarshal(data, &stored); err != nil {
		return &s, fmt.Errorf("%w %s: %v", ErrMalformed, path, err)
	}
	s.merge(data, stored)

	return &s, nil
}

// merge copies the fields present in the stored document over s. Presence is
// checked against the raw keys so that false and 0 still override defaults.
func (s *Settings) merge(data []byte, stored Settings) {
	var keys map[string]json.RawMessage
	_ = json.Unmarshal(data, &keys)

	if _, ok := keys["location"]; ok {
		s.Location = stored.Location
	}
	if _, ok := keys["location_name"]; ok {
		s.LocationName = stored.LocationName
	}
	for name, on := range stored.Notifications {
		s.Notifications[name] = on
	}
	if _, ok := keys["notification_offset"]; ok && validOffset(stored.NotificationOffset) {
		s.NotificationOffset = stored.NotificationOffset
	}
	if _, ok := keys["is_ramadan_override"]; ok {
		s.IsRamadanOverride = stored.IsRamadanOverride
	}
	if stored.Method != nil {
		s.Method = stored.Method
	}
	if stored.School != nil {
		s.School = stored.School
	}
	if stored.TimeFormat != "" {
		s.TimeFormat = stored.TimeFormat
	}
	if stored.CacheDir != "" {
		s.CacheDir = stored.CacheDir
	}
}

// Save writes the settings to disk, creating the directory if needed.
func (s *Settings) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return s.SaveTo(path)
}

// SaveTo writes the settings to a specific file path. The file is replaced
// atomically so a crash mid-write never leaves a truncated document.
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	return nil
}

// Reset deletes the settings file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}

	return ResetAt(path)
}

// ResetAt deletes the settings file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete settings file: %w", err)
	}
	return nil
}

// ToggleNotification flips the alarm for a prayer and returns the new state.
func (s *Settings) ToggleNotification(name string) (bool, error) {
	canonical, ok := canonicalPrayer(name)
	if !ok {
		return false, fmt.Errorf("invalid prayer name %q; valid names: %s", name, strings.Join(prayer.Order, ", "))
	}
	if s.Notifications == nil {
		s.Notifications = map[string]bool{}
	}
	s.Notifications[canonical] = !s.Notifications[canonical]
	return s.Notifications[canonical], nil
}

// SetOffset sets the notification offset in minutes.
func (s *Settings) SetOffset(minutes int) error {
	if !validOffset(minutes) {
		return fmt.Errorf("invalid offset %d: must be one of 0, 5, 10", minutes)
	}
	s.NotificationOffset = minutes
	return nil
}

// SetDistrict moves the location to a preset district.
func (s *Settings) SetDistrict(d geo.District) {
	s.SetLocation(d.Latitude, d.Longitude, d.Name)
}

// SetLocation replaces the location wholesale.
func (s *Settings) SetLocation(lat, lon float64, name string) {
	s.Location = Location{Latitude: lat, Longitude: lon}
	s.LocationName = name
}

// SetRamadanOverride sets the manual Ramadan flag.
func (s *Settings) SetRamadanOverride(on bool) {
	s.IsRamadanOverride = on
}

// Set sets a key to the given value.
// It validates the key name and parses the value into the correct type.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		s.Location.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		s.Location.Longitude = v
	case "location_name":
		s.LocationName = value
	case "offset":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid offset %q: must be an integer", value)
		}
		return s.SetOffset(v)
	case "ramadan_override":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid ramadan_override %q: must be true or false", value)
		}
		s.IsRamadanOverride = v
	case "method":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: must be an integer", value)
		}
		if v < 0 || v > 23 {
			return fmt.Errorf("invalid method %q: must be between 0 and 23", value)
		}
		s.Method = &v
	case "school":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid school %q: must be an integer", value)
		}
		if v != 0 && v != 1 {
			return fmt.Errorf("invalid school %q: must be 0 (Shafi) or 1 (Hanafi)", value)
		}
		s.School = &v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		s.TimeFormat = value
	case "cache_dir":
		s.CacheDir = value
	default:
		return fmt.Errorf("unknown settings key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a key.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "latitude":
		return strconv.FormatFloat(s.Location.Latitude, 'f', -1, 64), nil
	case "longitude":
		return strconv.FormatFloat(s.Location.Longitude, 'f', -1, 64), nil
	case "location_name":
		return s.LocationName, nil
	case "offset":
		return strconv.Itoa(s.NotificationOffset), nil
	case "ramadan_override":
		return strconv.FormatBool(s.IsRamadanOverride), nil
	case "method":
		if s.Method == nil {
			return "", nil
		}
		return strconv.Itoa(*s.Method), nil
	case "school":
		if s.School == nil {
			return "", nil
		}
		return strconv.Itoa(*s.School), nil
	case "time_format":
		return s.TimeFormat, nil
	case "cache_dir":
		return s.CacheDir, nil
	default:
		return "", fmt.Errorf("unknown settings key %q", key)
	}
}

// MethodOrDefault returns the method value, falling back to the given default.
func (s *Settings) MethodOrDefault(def int) int {
	if s.Method != nil {
		return *s.Method
	}
	return def
}

// SchoolOrDefault returns the school value, falling back to the given default.
func (s *Settings) SchoolOrDefault(def int) int {
	if s.School != nil {
		return *s.School
	}
	return def
}

func validOffset(n int) bool {
	for _, o := range Offsets {
		if o == n {
			return true
		}
	}
	return false
}

func canonicalPrayer(name string) (string, bool) {
	for _, n := range prayer.Order {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n, true
		}
	}
	return "", false
}
