package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-pro/internal/dashboard"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
)

var (
	flagFormat     string
	flagPrayerOnly bool
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next countdown target on one line",
		Long: "Display the current countdown target on a single line, suitable for status bars.\n" +
			"During Ramadan this is Sehri or Iftar when one is ahead; otherwise the next prayer.",
		RunE: runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: "+strings.Join(prayer.Formats, ", ")+", or a custom Go template")
	cmd.Flags().BoolVar(&flagPrayerOnly, "prayer-only", false, "Always show the next prayer, ignoring Sehri and Iftar")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	s, c := resolveSettings(cmd)
	t := now()

	day, err := dashboard.LoadDay(cmd.Context(), newProvider(c), s, t)
	if err != nil {
		return fmt.Errorf("failed to load prayer times: %w", err)
	}
	snap := day.Snapshot(s.IsRamadanOverride, t)

	target, label := snap.Countdown.Prayer(), snap.Countdown.Label
	if flagPrayerOnly {
		target, label = snap.Next, "Next: "+snap.Next.Name
	}

	fmt.Fprintln(cmd.OutOrStdout(), prayer.FormatOutput(target, label, snap.Now, flagFormat, goTimeFormat(s)))
	return nil
}
