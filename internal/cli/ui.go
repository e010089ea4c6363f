package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-pro/internal/admin"
	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/tui"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Long: "Open a full-screen dashboard with Home, Calendar, Tracker and Settings tabs.\n" +
			"Alarms fire while it is open. Logs go to ui.log in the data directory.",
		Args: cobra.NoArgs,
		RunE: runUI,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	s, c := resolveSettings(cmd)

	gate, err := admin.NewGate(env.AdminCode)
	if err != nil {
		return err
	}

	store, err := openTracker(cmd.Context())
	if err != nil {
		log.Warn().Err(err).Msg("tracker unavailable, progress will not be saved")
		store = nil
	} else {
		defer store.Close()
	}

	// The alt screen owns the terminal until the program exits.
	logFile := redirectLogs(filepath.Join(filepath.Dir(trackerPath()), "ui.log"))
	if logFile != nil {
		defer logFile.Close()
	}

	// Only the fields the dashboard edits are written back, so flag overrides
	// never reach the settings file.
	save := func(edited *config.Settings) error {
		loadedSettings.Notifications = edited.Notifications
		loadedSettings.NotificationOffset = edited.NotificationOffset
		loadedSettings.IsRamadanOverride = edited.IsRamadanOverride
		loadedSettings.Location = edited.Location
		loadedSettings.LocationName = edited.LocationName
		return saveSettings()
	}

	err = tui.Run(cmd.Context(), tui.Deps{
		Source:   newProvider(c),
		Settings: s,
		Save:     save,
		Tracker:  store,
		Gate:     gate,
		Notifier: newNotifier(),
		Now:      now,
	})
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// redirectLogs points the global logger at path, or discards logs when the
// file cannot be opened.
func redirectLogs(path string) *os.File {
	var w io.Writer = io.Discard
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err == nil {
		w = f
	}
	log.Logger = log.Logger.Output(w)
	if err != nil {
		return nil
	}
	return f
}
