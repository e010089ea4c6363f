// Package tui is the interactive dashboard: a bubbletea program with Home,
// Calendar, Tracker and Settings tabs driven by a one-second tick.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smokyabdulrahman/ramadan-pro/internal/admin"
	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/dashboard"
	"github.com/smokyabdulrahman/ramadan-pro/internal/notify"
	"github.com/smokyabdulrahman/ramadan-pro/internal/ramadan"
	"github.com/smokyabdulrahman/ramadan-pro/internal/tracker"
)

// Tabs.
const (
	tabHome = iota
	tabCalendar
	tabTracker
	tabSettings
)

var tabNames = []string{"Home", "Calendar", "Tracker", "Settings"}

// retryBackoff spaces out day fetches after a failure.
const retryBackoff = time.Minute

// Source provides daily and monthly prayer data.
type Source interface {
	dashboard.DaySource
	ramadan.CalendarSource
}

// Deps are the collaborators of the dashboard.
type Deps struct {
	Source   Source
	Settings *config.Settings
	// Save persists Settings after a change. Nil skips persistence.
	Save func(*config.Settings) error
	// Tracker persists the tracker list. Nil keeps it in memory.
	Tracker  *tracker.Store
	Gate     *admin.Gate
	Notifier notify.Notifier
	Now      func() time.Time
	// Schedule overrides the calendar window; zero fields use the defaults.
	Schedule ramadan.ScheduleRequest
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	deps    Deps
	ctx     context.Context
	trigger *notify.Trigger

	tab           int
	width, height int

	day        *dashboard.Day
	snap       dashboard.Snapshot
	loadingDay bool
	retryAt    time.Time
	err        error

	rows            []ramadan.Row
	scheduleLoading bool

	entries []tracker.Entry
	counter tracker.Counter

	settingsCursor int
	adminOpen      bool
	adminInput     textinput.Model
	adminMsg       string

	status string
}

// New returns the dashboard model.
func New(d Deps) Model {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Settings == nil {
		s := config.Defaults()
		d.Settings = &s
	}

	in := textinput.New()
	in.Placeholder = "Access code"
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.CharLimit = 32
	in.Width = 20

	return Model{
		deps:       d,
		ctx:        context.Background(),
		trigger:    notify.NewTrigger(d.Notifier),
		loadingDay: d.Source != nil,
		adminInput: in,
		entries:    []tracker.Entry{},
	}
}

// Run starts the dashboard on the alternate screen and blocks until it exits.
func Run(ctx context.Context, d Deps) error {
	m := New(d)
	m.ctx = ctx
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init starts the first fetches and the tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDayCmd(), m.loadScheduleCmd(), m.loadTrackerCmd(), tickCmd())
}

func (m Model) now() time.Time {
	return m.deps.Now()
}

func (m Model) save() error {
	if m.deps.Save == nil {
		return nil
	}
	return m.deps.Save(m.deps.Settings)
}

func (m Model) scheduleRequest() ramadan.ScheduleRequest {
	req := m.deps.Schedule
	s := m.deps.Settings
	req.Latitude = s.Location.Latitude
	req.Longitude = s.Location.Longitude
	req.Method = s.MethodOrDefault(api.DefaultMethod)
	req.School = s.SchoolOrDefault(api.DefaultSchool)
	if req.Year == 0 {
		req.Year = m.now().Year()
	}
	if req.StartDay == 0 {
		req.StartDay = ramadan.DefaultStartDay
	}
	if req.StartMonth == 0 {
		req.StartMonth = ramadan.DefaultStartMonth
	}
	if req.TotalDays == 0 {
		req.TotalDays = ramadan.DefaultTotalDays
	}
	return req
}
