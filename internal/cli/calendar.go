package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/dashboard"
	"github.com/smokyabdulrahman/ramadan-pro/internal/display"
	"github.com/smokyabdulrahman/ramadan-pro/internal/ramadan"
)

var (
	flagStartDay   int
	flagStartMonth int
	flagDays       int
	flagYear       int
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the Ramadan Sehri and Iftar schedule",
		Long: "Display a table of Sehri end and Iftar times for each day of the fast.\n" +
			"Fridays are highlighted, as is today's row.",
		Args: cobra.NoArgs,
		RunE: runCalendar,
	}

	cmd.Flags().IntVar(&flagStartDay, "start-day", ramadan.DefaultStartDay, "Gregorian day the fast starts")
	cmd.Flags().IntVar(&flagStartMonth, "start-month", ramadan.DefaultStartMonth, "Gregorian month the fast starts (1-12)")
	cmd.Flags().IntVar(&flagDays, "days", ramadan.DefaultTotalDays, "Number of days to show")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Gregorian year (default: current year)")

	return cmd
}

func runCalendar(cmd *cobra.Command, args []string) error {
	if flagStartMonth < 1 || flagStartMonth > 12 {
		return fmt.Errorf("invalid start month %d: must be between 1 and 12", flagStartMonth)
	}
	if flagStartDay < 1 || flagStartDay > 31 {
		return fmt.Errorf("invalid start day %d: must be between 1 and 31", flagStartDay)
	}
	if flagDays < 1 {
		return fmt.Errorf("invalid number of days %d: must be a positive integer", flagDays)
	}

	s, c := resolveSettings(cmd)
	t := now()
	year := flagYear
	if year == 0 {
		year = t.Year()
	}

	days := ramadan.FetchSchedule(cmd.Context(), newProvider(c), ramadan.ScheduleRequest{
		Latitude:   s.Location.Latitude,
		Longitude:  s.Location.Longitude,
		Method:     s.MethodOrDefault(api.DefaultMethod),
		School:     s.SchoolOrDefault(api.DefaultSchool),
		Year:       year,
		StartDay:   flagStartDay,
		StartMonth: flagStartMonth,
		TotalDays:  flagDays,
	})

	var rows []ramadan.Row
	if len(days) > 0 {
		var err error
		rows, err = ramadan.ScheduleRows(days, dashboard.Timezone(days[0].Meta.Timezone), t)
		if err != nil {
			return fmt.Errorf("failed to build schedule: %w", err)
		}
	}

	if FlagJSON {
		return printCalendarJSON(cmd.OutOrStdout(), rows, s)
	}
	printCalendarTable(cmd.OutOrStdout(), rows, s)
	return nil
}

// printCalendarTable renders the schedule as an aligned table.
func printCalendarTable(w io.Writer, rows []ramadan.Row, s *config.Settings) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n", display.Gold("Ramadan Schedule"), display.Dim(s.LocationName))
	fmt.Fprintln(w)

	if len(rows) == 0 {
		fmt.Fprintln(w, "  No schedule data available.")
		fmt.Fprintln(w)
		return
	}

	goTimeFmt := goTimeFormat(s)
	table := display.NewTable([]string{"Day", "Date", "Weekday", "Sehri Ends", "Iftar"})
	for i, r := range rows {
		table.AddRow([]string{
			strconv.Itoa(r.Index),
			r.Date.Format("02 Jan"),
			r.Weekday,
			r.SehriEnd.Format(goTimeFmt),
			r.Iftar.Format(goTimeFmt),
		})
		switch {
		case r.IsToday:
			table.SetHighlightRow(i)
		case r.IsFriday:
			table.SetRowStyle(i, display.Magenta)
		}
	}

	fmt.Fprint(w, table.Render())
	fmt.Fprintln(w)
}

type calendarJSONRow struct {
	Day      int    `json:"day"`
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	SehriEnd string `json:"sehri_end"`
	Iftar    string `json:"iftar"`
	Friday   bool   `json:"friday"`
	Today    bool   `json:"today"`
}

// printCalendarJSON renders the schedule as a JSON array.
func printCalendarJSON(w io.Writer, rows []ramadan.Row, s *config.Settings) error {
	goTimeFmt := goTimeFormat(s)

	out := make([]calendarJSONRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, calendarJSONRow{
			Day:      r.Index,
			Date:     r.Date.Format("2006-01-02"),
			Weekday:  r.Weekday,
			SehriEnd: r.SehriEnd.Format(goTimeFmt),
			Iftar:    r.Iftar.Format(goTimeFmt),
			Friday:   r.IsFriday,
			Today:    r.IsToday,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
