package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/dashboard"
	"github.com/smokyabdulrahman/ramadan-pro/internal/display"
	"github.com/smokyabdulrahman/ramadan-pro/internal/geo"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or modify settings",
		Long:  "Display current settings, or use subcommands to modify them.\nWhen run without subcommands, shows the current settings.",
		RunE:  runSettingsShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a settings value",
		Long: fmt.Sprintf("Set a settings value. Valid keys: %s\n\nExamples:\n  ramadan-pro settings set latitude 23.8103\n  ramadan-pro settings set method 1\n  ramadan-pro settings set time_format 12h",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runSettingsSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "alarm <prayer>",
		Short: "Toggle the alarm for a prayer",
		Long:  fmt.Sprintf("Switch a prayer's notification on or off. Prayers: %s", strings.Join(prayer.Order, ", ")),
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsAlarm,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "offset <minutes>",
		Short: "Set how many minutes before a prayer the alarm fires (0, 5 or 10)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsOffset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "district <name>",
		Short: "Use a preset district as the location",
		Long:  "Set the location to one of the preset districts. Run 'ramadan-pro districts' for the list.",
		Args:  cobra.ExactArgs(1),
		RunE:  runSettingsDistrict,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "locate",
		Short: "Detect the location from your IP address",
		Args:  cobra.NoArgs,
		RunE:  runSettingsLocate,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset settings to defaults",
		Long:  "Delete the settings file and restore all settings to defaults.",
		RunE:  runSettingsReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print settings file path",
		RunE:  runSettingsPath,
	})

	return cmd
}

// runSettingsShow displays the stored settings.
func runSettingsShow(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	s := loadedSettings

	fmt.Fprintf(w, "  Settings (%s)\n\n", settingsPath)

	for _, key := range config.ValidKeys {
		val, _ := s.Get(key)
		shown := val
		if shown == "" {
			shown = "(not set)"
		}
		if key == "method" && val != "" {
			shown = formatMethodValue(val)
		}
		if key == "school" && val != "" {
			shown = formatSchoolValue(val)
		}
		fmt.Fprintf(w, "  %-16s %s\n", key, shown)
	}

	fmt.Fprintf(w, "\n  Alarms\n\n")
	for _, name := range prayer.Order {
		state := display.Red("off")
		if s.Notifications[name] {
			state = display.Green("on")
		}
		fmt.Fprintf(w, "  %-16s %s\n", name, state)
	}
	return nil
}

// runSettingsSet sets a settings key to the given value.
func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := loadedSettings.Set(key, value); err != nil {
		return err
	}
	if err := saveSettings(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runSettingsAlarm(cmd *cobra.Command, args []string) error {
	on, err := loadedSettings.ToggleNotification(args[0])
	if err != nil {
		return err
	}
	if err := saveSettings(); err != nil {
		return err
	}

	state := "off"
	if on {
		state = "on"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Alarm for %s is %s\n", canonicalName(args[0]), state)
	return nil
}

func runSettingsOffset(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid offset %q: must be an integer", args[0])
	}
	if err := loadedSettings.SetOffset(n); err != nil {
		return err
	}
	if err := saveSettings(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Alarms fire %d minutes before each prayer\n", n)
	return nil
}

func runSettingsDistrict(cmd *cobra.Command, args []string) error {
	d, err := geo.LookupDistrict(args[0])
	if err != nil {
		return err
	}
	loadedSettings.SetDistrict(d)
	if err := saveSettings(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location set to %s (%.4f, %.4f)\n", d.Name, d.Latitude, d.Longitude)
	return nil
}

func runSettingsLocate(cmd *cobra.Command, args []string) error {
	c := openCache(effectiveSettings(cmd))
	loc, err := dashboard.Locate(cmd.Context(), c, newLocator())
	if err != nil {
		return fmt.Errorf("failed to detect location: %w", err)
	}

	loadedSettings.SetLocation(loc.Latitude, loc.Longitude, loc.Name())
	if err := saveSettings(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location set to %s (%.4f, %.4f)\n", loc.Name(), loc.Latitude, loc.Longitude)
	return nil
}

// runSettingsReset deletes the settings file.
func runSettingsReset(cmd *cobra.Command, args []string) error {
	if err := config.ResetAt(settingsPath); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults.")
	return nil
}

// runSettingsPath prints the settings file path.
func runSettingsPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), settingsPath)
	return nil
}

// canonicalName returns the prayer name as spelled in prayer.Order.
func canonicalName(name string) string {
	for _, n := range prayer.Order {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n
		}
	}
	return name
}

// formatMethodValue adds the method name to the numeric value.
func formatMethodValue(val string) string {
	for _, m := range CalculationMethods {
		if strconv.Itoa(m.ID) == val {
			return fmt.Sprintf("%s (%s)", val, m.Name)
		}
	}
	return val
}

// formatSchoolValue adds the school name to the numeric value.
func formatSchoolValue(val string) string {
	switch val {
	case "0":
		return "0 (Shafi)"
	case "1":
		return "1 (Hanafi)"
	default:
		return val
	}
}
