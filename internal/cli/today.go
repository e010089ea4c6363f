package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/dashboard"
	"github.com/smokyabdulrahman/ramadan-pro/internal/display"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
	"github.com/smokyabdulrahman/ramadan-pro/internal/ramadan"
)

// now is replaced in tests.
var now = time.Now

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's prayers and the Sehri/Iftar countdown",
		Long:  "Display today's prayer times, the current countdown and, during Ramadan,\nthe Sehri and Iftar times with their duas. This is the default command.",
		RunE:  runToday,
	}
}

func runToday(cmd *cobra.Command, args []string) error {
	s, c := resolveSettings(cmd)
	t := now()

	day, err := dashboard.LoadDay(cmd.Context(), newProvider(c), s, t)
	if err != nil {
		return fmt.Errorf("failed to load prayer times: %w", err)
	}
	snap := day.Snapshot(s.IsRamadanOverride, t)

	if FlagJSON {
		return printTodayJSON(cmd.OutOrStdout(), day, snap, s)
	}
	printTodayRich(cmd.OutOrStdout(), day, snap, s)
	return nil
}

// printTodayRich renders the colored terminal home view.
func printTodayRich(w io.Writer, day *dashboard.Day, snap dashboard.Snapshot, s *config.Settings) {
	goTimeFmt := goTimeFormat(s)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Gold("Ramadan Pro"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.LocationName)
	fmt.Fprintf(w, "  %s\n", formatGregorianDate(snap.Now, day.Data))
	if hijri := day.Data.Date.Hijri.Format(); hijri != "" {
		fmt.Fprintf(w, "  %s\n", hijri)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", display.Dim(snap.Countdown.Label))
	fmt.Fprintf(w, "  %s\n", display.Bold(snap.Remaining()))
	fmt.Fprintln(w)

	maxNameLen := 0
	for _, p := range day.Prayers {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	for _, p := range day.Prayers {
		line := fmt.Sprintf("  %s  %s", padRight(p.Name, maxNameLen), p.Time.Format(goTimeFmt))
		alarm := display.Gray("  alarm off")
		if s.Notifications[p.Name] {
			alarm = display.Green("  alarm on")
		}

		switch p.Name {
		case snap.Current:
			fmt.Fprintln(w, display.Dim(line)+alarm)
		case snap.Next.Name:
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(snap.Next, snap.Now))
			fmt.Fprintln(w, display.Accent(line)+alarm+display.Accent("  <- next in "+remaining))
		default:
			fmt.Fprintln(w, line+alarm)
		}
	}
	fmt.Fprintln(w)

	if !snap.IsRamadan {
		return
	}

	if snap.SehriEnd != nil && snap.IftarStart != nil {
		fmt.Fprintf(w, "  %s %s    %s %s\n",
			display.Dim("Sehri ends"), display.Gold(snap.SehriEnd.Format(goTimeFmt)),
			display.Dim("Iftar"), display.Gold(snap.IftarStart.Format(goTimeFmt)))
		fmt.Fprintln(w)
	}

	for _, d := range ramadan.Duas {
		fmt.Fprintf(w, "  %s\n", display.Bold(d.Title))
		fmt.Fprintf(w, "  %s\n", d.Arabic)
		fmt.Fprintf(w, "  %s\n", display.Dim(d.Transliteration))
		fmt.Fprintf(w, "  %s\n", d.Meaning)
		fmt.Fprintln(w)
	}
}

// formatGregorianDate returns a formatted Gregorian date string.
// Prefers API data; falls back to formatting `now`.
func formatGregorianDate(now time.Time, data api.Data) string {
	g := data.Date.Gregorian
	if g.Day != "" && g.Month.En != "" && g.Year != "" {
		weekday := g.Weekday.En
		if weekday == "" {
			weekday = now.Weekday().String()
		}
		return weekday + ", " + g.Day + " " + g.Month.En + " " + g.Year
	}
	return now.Format("Monday, 02 January 2006")
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the home view.
type todayJSON struct {
	Location  todayJSONLocation  `json:"location"`
	Date      todayJSONDate      `json:"date"`
	Timings   map[string]string  `json:"timings"`
	Alarms    map[string]bool    `json:"alarms"`
	Current   string             `json:"current"`
	Next      *todayJSONNext     `json:"next"`
	Countdown todayJSONCountdown `json:"countdown"`
	Ramadan   *todayJSONRamadan  `json:"ramadan,omitempty"`
}

type todayJSONLocation struct {
	Name      string  `json:"name"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

type todayJSONCountdown struct {
	Label     string `json:"label"`
	Target    string `json:"target"`
	Remaining string `json:"remaining"`
}

type todayJSONRamadan struct {
	SehriEnd string        `json:"sehri_end,omitempty"`
	Iftar    string        `json:"iftar,omitempty"`
	Duas     []ramadan.Dua `json:"duas"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, day *dashboard.Day, snap dashboard.Snapshot, s *config.Settings) error {
	goTimeFmt := goTimeFormat(s)

	timings := make(map[string]string, len(day.Prayers))
	alarms := make(map[string]bool, len(day.Prayers))
	for _, p := range day.Prayers {
		key := strings.ToLower(p.Name)
		timings[key] = p.Time.Format(goTimeFmt)
		alarms[key] = s.Notifications[p.Name]
	}

	out := todayJSON{
		Location: todayJSONLocation{
			Name:      s.LocationName,
			Timezone:  day.Location.String(),
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
		},
		Date: todayJSONDate{
			Gregorian: formatGregorianDate(snap.Now, day.Data),
			Hijri:     day.Data.Date.Hijri.Format(),
		},
		Timings: timings,
		Alarms:  alarms,
		Current: strings.ToLower(snap.Current),
		Countdown: todayJSONCountdown{
			Label:     snap.Countdown.Label,
			Target:    snap.Countdown.Target.Format(goTimeFmt),
			Remaining: snap.Remaining(),
		},
	}

	if snap.Next.Name != "" {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(snap.Next.Name),
			Time:      snap.Next.Time.Format(goTimeFmt),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(snap.Next, snap.Now)),
		}
	}

	if snap.IsRamadan {
		r := &todayJSONRamadan{Duas: ramadan.Duas}
		if snap.SehriEnd != nil {
			r.SehriEnd = snap.SehriEnd.Format(goTimeFmt)
		}
		if snap.IftarStart != nil {
			r.Iftar = snap.IftarStart.Format(goTimeFmt)
		}
		out.Ramadan = r
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
