package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/dashboard"
	"github.com/smokyabdulrahman/ramadan-pro/internal/notify"
)

// refetchBackoff spaces out retries after a failed day fetch.
const refetchBackoff = time.Minute

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the countdown and prayer alarms in the foreground",
		Long: "Keep the countdown running once a second and send a desktop notification when a\n" +
			"prayer with its alarm on is due. The day's times are re-fetched after midnight.\n" +
			"Stop with Ctrl+C.",
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

// newNotifier returns the alarm delivery chain.
func newNotifier() notify.Notifier {
	return notify.Multi{notify.NewDesktop(), notify.Log{Logger: log.Logger}}
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, c := resolveSettings(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &watcher{
		src:      newProvider(c),
		settings: s,
		trigger:  notify.NewTrigger(newNotifier()),
		out:      cmd.OutOrStdout(),
		live:     isTTY(cmd.OutOrStdout()),
	}
	return w.run(ctx, time.Second)
}

// watcher owns the tick loop. It is driven by a single goroutine.
type watcher struct {
	src      dashboard.DaySource
	settings *config.Settings
	trigger  *notify.Trigger
	out      io.Writer
	// live rewrites one line in place; otherwise a line is printed only when
	// the countdown target changes.
	live bool

	day      *dashboard.Day
	retryAt  time.Time
	lastName string
}

func (w *watcher) run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.tick(ctx, now())
	for {
		select {
		case <-ctx.Done():
			if w.live {
				fmt.Fprintln(w.out)
			}
			return nil
		case <-ticker.C:
			w.tick(ctx, now())
		}
	}
}

// tick recomputes the derived state for t, fetching a new day when the date
// has changed, and fires any due alarm.
func (w *watcher) tick(ctx context.Context, t time.Time) {
	if (w.day == nil || w.day.Stale(t)) && !t.Before(w.retryAt) {
		day, err := dashboard.LoadDay(ctx, w.src, w.settings, t)
		if err != nil {
			log.Warn().Err(err).Msg("prayer data unavailable, retrying later")
			w.retryAt = t.Add(refetchBackoff)
		} else {
			w.day = day
			log.Debug().Time("date", day.Date).Msg("loaded prayer times")
		}
	}
	if w.day == nil {
		return
	}

	snap := w.day.Snapshot(w.settings.IsRamadanOverride, t)
	if fired, err := w.trigger.MaybeNotify(snap.Alarm, w.settings, snap.Now); err != nil {
		log.Warn().Err(err).Msg("notification failed")
	} else if fired {
		log.Info().Str("prayer", snap.Alarm.Name).Msg("alarm fired")
	}

	line := fmt.Sprintf("%s  %s", snap.Countdown.Label, snap.Remaining())
	switch {
	case w.live:
		fmt.Fprintf(w.out, "\r\033[K%s", line)
	case snap.Countdown.Name != w.lastName:
		fmt.Fprintln(w.out, line)
	}
	w.lastName = snap.Countdown.Name
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
