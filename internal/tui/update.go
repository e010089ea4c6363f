package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/ramadan-pro/internal/admin"
	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/geo"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
	"github.com/smokyabdulrahman/ramadan-pro/internal/ramadan"
	"github.com/smokyabdulrahman/ramadan-pro/internal/tracker"
)

// Rows of the settings tab after the per-prayer alarms.
var (
	itemOffset   = len(prayer.Order)
	itemDistrict = len(prayer.Order) + 1
	itemRamadan  = len(prayer.Order) + 2
	settingsRows = len(prayer.Order) + 3
)

// Update handles messages. Fetch results overwrite state in arrival order.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick()

	case dayMsg:
		m.loadingDay = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("prayer data unavailable")
			m.err = msg.err
			m.retryAt = m.now().Add(retryBackoff)
			return m, nil
		}
		m.err = nil
		m.day = msg.day
		m.refresh()
		return m, nil

	case scheduleMsg:
		m.scheduleLoading = false
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("schedule unavailable")
		}
		m.rows = msg.rows
		if m.rows == nil {
			m.rows = []ramadan.Row{}
		}
		return m, nil

	case trackerMsg:
		if msg.err != nil {
			m.status = "Tracker not saved: " + msg.err.Error()
		}
		if msg.entries != nil {
			m.entries = msg.entries
		}
		return m, nil

	case tea.KeyMsg:
		if m.adminOpen {
			return m.handleAdminKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// handleTick recomputes the derived state and fires any due alarm. A new day
// is fetched once the date changes, or after the backoff when the last fetch
// failed.
func (m Model) handleTick() (Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}
	now := m.now()
	if (m.day == nil || m.day.Stale(now)) && !m.loadingDay && !now.Before(m.retryAt) {
		if cmd := m.loadDayCmd(); cmd != nil {
			m.loadingDay = true
			cmds = append(cmds, cmd)
		}
	}
	if m.day == nil {
		return m, tea.Batch(cmds...)
	}
	m.refresh()

	if _, err := m.trigger.MaybeNotify(m.snap.Alarm, m.deps.Settings, m.snap.Now); err != nil {
		log.Warn().Err(err).Msg("notification failed")
	}
	return m, tea.Batch(cmds...)
}

// refresh rebuilds the snapshot from scratch.
func (m *Model) refresh() {
	if m.day == nil {
		return
	}
	m.snap = m.day.Snapshot(m.deps.Settings.IsRamadanOverride, m.now())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right":
		m.tab = (m.tab + 1) % len(tabNames)
		return m, nil
	case "shift+tab", "left":
		m.tab = (m.tab + len(tabNames) - 1) % len(tabNames)
		return m, nil
	case "1", "2", "3", "4":
		m.tab = int(msg.String()[0] - '1')
		return m, nil
	}

	switch m.tab {
	case tabTracker:
		return m.handleTrackerKey(msg)
	case tabSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) handleTrackerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return m, m.toggleTrackerCmd(tracker.Roza)
	case "t":
		return m, m.toggleTrackerCmd(tracker.Taraweeh)
	case " ", "enter":
		m.counter.Tap()
	case "x":
		m.counter.Reset()
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
		return m, nil
	case "down", "j":
		if m.settingsCursor < settingsRows-1 {
			m.settingsCursor++
		}
		return m, nil
	case " ", "enter":
	default:
		return m, nil
	}

	s := m.deps.Settings
	switch {
	case m.settingsCursor < itemOffset:
		name := prayer.Order[m.settingsCursor]
		if _, err := s.ToggleNotification(name); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.persist()
		return m, nil

	case m.settingsCursor == itemOffset:
		_ = s.SetOffset(nextOffset(s.NotificationOffset))
		m.persist()
		return m, nil

	case m.settingsCursor == itemDistrict:
		s.SetDistrict(nextDistrict(s.LocationName))
		m.persist()
		m.loadingDay = true
		m.scheduleLoading = true
		return m, tea.Batch(m.loadDayCmd(), m.loadScheduleCmd())

	case m.settingsCursor == itemRamadan:
		m.adminOpen = true
		m.adminMsg = ""
		m.adminInput.Reset()
		cmd := m.adminInput.Focus()
		return m, cmd
	}
	return m, nil
}

// handleAdminKey drives the access code prompt. Success flips the Ramadan
// override; a wrong code keeps the prompt open.
func (m Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adminOpen = false
		m.adminInput.Blur()
		return m, nil
	case "enter":
		err := errors.New("admin gate unavailable")
		if m.deps.Gate != nil {
			err = m.deps.Gate.Check(m.adminInput.Value())
		}
		if err != nil {
			if errors.Is(err, admin.ErrAuthFailure) {
				m.adminMsg = admin.FailureMessage
			} else {
				m.adminMsg = err.Error()
			}
			m.adminInput.Reset()
			return m, nil
		}

		s := m.deps.Settings
		s.SetRamadanOverride(!s.IsRamadanOverride)
		m.persist()
		m.adminOpen = false
		m.adminInput.Blur()
		m.refresh()
		m.status = fmt.Sprintf("Ramadan mode override %s", onOff(s.IsRamadanOverride))
		return m, nil
	}

	var cmd tea.Cmd
	m.adminInput, cmd = m.adminInput.Update(msg)
	return m, cmd
}

// persist saves the settings, reporting failure in the status line.
func (m *Model) persist() {
	if err := m.save(); err != nil {
		log.Warn().Err(err).Msg("settings not saved")
		m.status = "Settings not saved: " + err.Error()
	}
}

func nextOffset(current int) int {
	for i, o := range config.Offsets {
		if o == current {
			return config.Offsets[(i+1)%len(config.Offsets)]
		}
	}
	return config.Offsets[0]
}

// nextDistrict cycles through the presets, starting at the first one when the
// location is not a preset.
func nextDistrict(current string) geo.District {
	for i, d := range geo.Districts {
		if d.Name == current {
			return geo.Districts[(i+1)%len(geo.Districts)]
		}
	}
	return geo.Districts[0]
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
