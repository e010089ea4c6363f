package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/cache"
	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/dashboard"
	"github.com/smokyabdulrahman/ramadan-pro/internal/geo"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude   float64
	FlagLongitude  float64
	FlagMethod     int
	FlagSchool     int
	FlagJSON       bool
	FlagCacheDir   string
	FlagTimeFormat string
	FlagLogLevel   string
	FlagConfig     string
	FlagDataDir    string
)

// State loaded during PersistentPreRunE and shared by the subcommand handlers.
var (
	loadedSettings *config.Settings
	settingsPath   string
	env            config.Environment
)

// newLocator builds the IP geolocation client. Tests replace it.
var newLocator = func() dashboard.Locator { return geo.NewDetector() }

// NewRootCmd creates the root command for the ramadan-pro CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ramadan-pro",
		Short:   "Ramadan prayer times, Sehri/Iftar countdown and fasting tracker",
		Long:    "Prayer times with a Sehri and Iftar countdown, a Ramadan schedule and a\nfasting tracker, powered by the Al Adhan API.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		// Default action: show the home view.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(PrintVersion(version))

	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.IntVar(&FlagMethod, "method", -1, "Override calculation method (0-23)")
	pf.IntVar(&FlagSchool, "school", -1, "Override school (0=Shafi, 1=Hanafi)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/ramadan-pro/)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides settings)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from $"+config.EnvLogLevel+")")
	pf.StringVar(&FlagConfig, "config", "", "Settings file (default: ~/.config/ramadan-pro/settings.json)")
	pf.StringVar(&FlagDataDir, "data-dir", "", "Tracker data directory (default: ~/.local/share/ramadan-pro/)")

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newCalendarCmd())
	rootCmd.AddCommand(newTrackerCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newDistrictsCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newUICmd())

	return rootCmd
}

// PrintVersion returns the --version output.
func PrintVersion(version string) string {
	return fmt.Sprintf("ramadan-pro version %s\n", version)
}

// setup configures logging, reads the environment and loads the settings
// file. A malformed settings file is logged and replaced by the defaults.
func setup(cmd *cobra.Command) error {
	root := cmd.Root().PersistentFlags()
	levelSet := flagWasSet(cmd.Flags(), root, "log-level")

	level := "warn"
	if levelSet {
		level = FlagLogLevel
	}
	setupLogging(cmd.ErrOrStderr(), level)

	env = config.LoadEnv()
	if !levelSet {
		setupLogging(cmd.ErrOrStderr(), env.LogLevel)
	}

	path := FlagConfig
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}

	s, err := config.LoadFrom(path)
	switch {
	case errors.Is(err, config.ErrMalformed):
		log.Warn().Err(err).Msg("using default settings")
	case err != nil:
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loadedSettings = s
	settingsPath = path
	return nil
}

// setupLogging points the global logger at w. Unknown levels fall back to warn.
func setupLogging(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}

// saveSettings persists the loaded settings to the active settings path.
func saveSettings() error {
	if err := loadedSettings.SaveTo(settingsPath); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// effectiveSettings returns the merged settings, applying the priority:
// CLI flags > settings file > defaults. It uses cobra's Changed() to detect
// whether a flag was explicitly set. The stored settings are not modified.
func effectiveSettings(cmd *cobra.Command) *config.Settings {
	s := config.Defaults()
	if loadedSettings != nil {
		s = *loadedSettings
		s.Notifications = make(map[string]bool, len(loadedSettings.Notifications))
		for k, v := range loadedSettings.Notifications {
			s.Notifications[k] = v
		}
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	latSet := flagWasSet(flags, root, "latitude")
	lonSet := flagWasSet(flags, root, "longitude")
	if latSet {
		s.Location.Latitude = FlagLatitude
	}
	if lonSet {
		s.Location.Longitude = FlagLongitude
	}
	if latSet || lonSet {
		s.LocationName = fmt.Sprintf("%.4f, %.4f", s.Location.Latitude, s.Location.Longitude)
	}
	if flagWasSet(flags, root, "method") {
		m := FlagMethod
		s.Method = &m
	}
	if flagWasSet(flags, root, "school") {
		sc := FlagSchool
		s.School = &sc
	}
	if flagWasSet(flags, root, "cache-dir") {
		s.CacheDir = FlagCacheDir
	}

	// Time format: CLI flag > settings > default ("24h").
	if flagWasSet(flags, root, "time-format") {
		s.TimeFormat = FlagTimeFormat
	}
	if s.TimeFormat == "" {
		s.TimeFormat = "24h"
	}

	return &s
}

// resolveSettings returns the effective settings after attempting automatic
// location, together with the cache it used. Auto-location only runs while the
// stored location is the first-run default and no coordinates were passed.
func resolveSettings(cmd *cobra.Command) (*config.Settings, *cache.Cache) {
	s := effectiveSettings(cmd)
	c := openCache(s)

	root := cmd.Root().PersistentFlags()
	if loadedSettings != nil &&
		!flagWasSet(cmd.Flags(), root, "latitude") && !flagWasSet(cmd.Flags(), root, "longitude") &&
		dashboard.AutoLocate(cmd.Context(), loadedSettings, c, newLocator()) {
		if err := saveSettings(); err != nil {
			log.Warn().Err(err).Msg("detected location not saved")
		}
		s.Location = loadedSettings.Location
		s.LocationName = loadedSettings.LocationName
	}
	return s, c
}

// openCache opens the file cache. Failure is non-fatal; caching is skipped.
func openCache(s *config.Settings) *cache.Cache {
	c, err := cache.New(s.CacheDir)
	if err != nil {
		log.Warn().Err(err).Msg("cache disabled")
		return nil
	}
	return c
}

// newProvider returns the cached prayer data provider, honouring the API
// base URL from the environment.
func newProvider(c *cache.Cache) *cache.Provider {
	client := api.NewClient()
	if env.APIURL != "" {
		client.BaseURL = env.APIURL
	}
	return &cache.Provider{API: client, Cache: c}
}

// goTimeFormat maps the settings time format to a Go layout.
func goTimeFormat(s *config.Settings) string {
	if s.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
