package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-pro/internal/display"
	"github.com/smokyabdulrahman/ramadan-pro/internal/tracker"
)

var flagDate string

func newTrackerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Show or update the fasting tracker",
		Long:  "Display today's Roza and Taraweeh status and the number of completed fasts.\nUse the roza and taraweeh subcommands to mark a day.",
		Args:  cobra.NoArgs,
		RunE:  runTrackerShow,
	}

	for _, field := range []tracker.Field{tracker.Roza, tracker.Taraweeh} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(field),
			Short: fmt.Sprintf("Toggle %s for a day", field),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTrackerToggle(cmd, field)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <roza|taraweeh>",
		Short: "Toggle a tracker field for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := tracker.ParseField(args[0])
			if err != nil {
				return err
			}
			return runTrackerToggle(cmd, field)
		},
	})
	cmd.PersistentFlags().StringVar(&flagDate, "date", "", "Day to show or update as YYYY-MM-DD (default: today)")

	return cmd
}

// trackerPath returns the database path: --data-dir > environment > XDG default.
func trackerPath() string {
	dir := FlagDataDir
	if dir == "" {
		dir = env.DataDir
	}
	return tracker.DefaultPath(dir)
}

func openTracker(ctx context.Context) (*tracker.Store, error) {
	store, err := tracker.Open(ctx, trackerPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open tracker: %w", err)
	}
	return store, nil
}

// trackerDate resolves --date into a tracker key.
func trackerDate() (string, error) {
	if flagDate == "" {
		return tracker.DateKey(now()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", flagDate, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD", flagDate)
	}
	return tracker.DateKey(t), nil
}

func runTrackerShow(cmd *cobra.Command, args []string) error {
	key, err := trackerDate()
	if err != nil {
		return err
	}
	store, err := openTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	entries := store.Load(cmd.Context())
	entry, _ := tracker.Find(entries, key)

	if FlagJSON {
		return printTrackerJSON(cmd.OutOrStdout(), entry, entries)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Gold("Fasting Tracker"))
	fmt.Fprintf(w, "  %s\n", entry.Date)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-9s %s\n", "Roza", checkMark(entry.Roza))
	fmt.Fprintf(w, "  %-9s %s\n", "Taraweeh", checkMark(entry.Taraweeh))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Roza completed: %s\n", display.Bold(fmt.Sprintf("%d", tracker.RozaCount(entries))))
	fmt.Fprintf(w, "  Taraweeh prayed: %s\n", display.Bold(fmt.Sprintf("%d", tracker.TaraweehCount(entries))))
	fmt.Fprintln(w)
	return nil
}

func runTrackerToggle(cmd *cobra.Command, field tracker.Field) error {
	key, err := trackerDate()
	if err != nil {
		return err
	}
	store, err := openTracker(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Toggle(cmd.Context(), key, field)
	if err != nil {
		return fmt.Errorf("failed to update tracker: %w", err)
	}

	on := entry.Roza
	if field == tracker.Taraweeh {
		on = entry.Taraweeh
	}
	state := "not done"
	if on {
		state = "done"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s on %s: %s\n", field, entry.Date, state)
	return nil
}

func checkMark(done bool) string {
	if done {
		return display.Green("[x] done")
	}
	return display.Gray("[ ] not yet")
}

type trackerJSON struct {
	Today         tracker.Entry `json:"today"`
	RozaCount     int           `json:"roza_count"`
	TaraweehCount int           `json:"taraweeh_count"`
}

func printTrackerJSON(w io.Writer, entry tracker.Entry, entries []tracker.Entry) error {
	data, err := json.MarshalIndent(trackerJSON{
		Today:         entry,
		RozaCount:     tracker.RozaCount(entries),
		TaraweehCount: tracker.TaraweehCount(entries),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
