package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/ramadan-pro/internal/dashboard"
	"github.com/smokyabdulrahman/ramadan-pro/internal/ramadan"
	"github.com/smokyabdulrahman/ramadan-pro/internal/tracker"
)

// TickMsg drives the once-a-second recomputation.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type dayMsg struct {
	day *dashboard.Day
	err error
}

type scheduleMsg struct {
	rows []ramadan.Row
	err  error
}

type trackerMsg struct {
	entries []tracker.Entry
	err     error
}

func (m Model) loadDayCmd() tea.Cmd {
	if m.deps.Source == nil {
		return nil
	}
	ctx, src, s, t := m.ctx, m.deps.Source, *m.deps.Settings, m.now()
	return func() tea.Msg {
		day, err := dashboard.LoadDay(ctx, src, &s, t)
		return dayMsg{day: day, err: err}
	}
}

func (m Model) loadScheduleCmd() tea.Cmd {
	if m.deps.Source == nil {
		return nil
	}
	ctx, src, req, t := m.ctx, m.deps.Source, m.scheduleRequest(), m.now()
	return func() tea.Msg {
		days := ramadan.FetchSchedule(ctx, src, req)
		if len(days) == 0 {
			return scheduleMsg{rows: []ramadan.Row{}}
		}
		rows, err := ramadan.ScheduleRows(days, dashboard.Timezone(days[0].Meta.Timezone), t)
		return scheduleMsg{rows: rows, err: err}
	}
}

func (m Model) loadTrackerCmd() tea.Cmd {
	store := m.deps.Tracker
	if store == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return trackerMsg{entries: store.Load(ctx)}
	}
}

// toggleTrackerCmd flips field for today. Without a store the list is updated
// in memory.
func (m Model) toggleTrackerCmd(field tracker.Field) tea.Cmd {
	key := tracker.DateKey(m.now())
	store := m.deps.Tracker
	if store == nil {
		entries, err := tracker.Toggle(m.entries, key, field)
		return func() tea.Msg { return trackerMsg{entries: entries, err: err} }
	}
	ctx := m.ctx
	return func() tea.Msg {
		if _, err := store.Toggle(ctx, key, field); err != nil {
			log.Warn().Err(err).Str("field", string(field)).Msg("tracker update failed")
			return trackerMsg{entries: store.Load(ctx), err: err}
		}
		return trackerMsg{entries: store.Load(ctx)}
	}
}
