package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smokyabdulrahman/ramadan-pro/internal/admin"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
	"github.com/smokyabdulrahman/ramadan-pro/internal/ramadan"
	"github.com/smokyabdulrahman/ramadan-pro/internal/tracker"
)

// View renders the active tab.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.tab {
	case tabHome:
		b.WriteString(m.renderHome())
	case tabCalendar:
		b.WriteString(m.renderCalendar())
	case tabTracker:
		b.WriteString(m.renderTracker())
	case tabSettings:
		b.WriteString(m.renderSettings())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(CurrentTheme.Gold.Render(m.status) + "\n")
	}
	b.WriteString(CurrentTheme.Dim.Render(m.helpLine()))
	return CurrentTheme.Base.Render(b.String())
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, len(tabNames)+1)
	parts = append(parts, CurrentTheme.Title.Render("☪ Ramadan Pro")+"  ")
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.tab {
			parts = append(parts, CurrentTheme.ActiveTab.Render(label))
		} else {
			parts = append(parts, CurrentTheme.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) timeFormat() string {
	if m.deps.Settings.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

func (m Model) renderHome() string {
	s := m.deps.Settings
	if m.day == nil {
		if m.err != nil {
			return CurrentTheme.Error.Render("Prayer times unavailable") + "\n" +
				CurrentTheme.Dim.Render(m.err.Error()) + "\n"
		}
		return CurrentTheme.Dim.Render("Loading prayer times for "+s.LocationName+"...") + "\n"
	}

	tf := m.timeFormat()
	var b strings.Builder

	b.WriteString(CurrentTheme.Gold.Render(s.LocationName) + "\n")
	g := m.day.Data.Date.Gregorian
	if g.Day != "" {
		b.WriteString(fmt.Sprintf("%s, %s %s %s\n", g.Weekday.En, g.Day, g.Month.En, g.Year))
	} else {
		b.WriteString(m.snap.Now.Format("Monday, 02 January 2006") + "\n")
	}
	if hijri := m.day.Data.Date.Hijri.Format(); hijri != "" {
		b.WriteString(CurrentTheme.Dim.Render(hijri) + "\n")
	}
	b.WriteString("\n")

	countdown := CurrentTheme.Label.Render(m.snap.Countdown.Label) + "\n" +
		CurrentTheme.Countdown.Render(m.snap.Remaining())
	b.WriteString(CurrentTheme.Card.Render(countdown) + "\n\n")

	for _, p := range m.day.Prayers {
		alarm := CurrentTheme.Off.Render("○")
		if s.Notifications[p.Name] {
			alarm = CurrentTheme.On.Render("●")
		}
		line := fmt.Sprintf("%-8s %s", p.Name, p.Time.Format(tf))
		switch p.Name {
		case m.snap.Next.Name:
			line = CurrentTheme.Next.Render(line + "  next")
		case m.snap.Current:
			line = CurrentTheme.Dim.Render(line)
		}
		b.WriteString(alarm + " " + line + "\n")
	}

	if !m.snap.IsRamadan {
		return b.String()
	}

	b.WriteString("\n")
	if m.snap.SehriEnd != nil && m.snap.IftarStart != nil {
		card := fmt.Sprintf("%s %s    %s %s",
			CurrentTheme.Dim.Render("Sehri ends"), CurrentTheme.Gold.Render(m.snap.SehriEnd.Format(tf)),
			CurrentTheme.Dim.Render("Iftar"), CurrentTheme.Gold.Render(m.snap.IftarStart.Format(tf)))
		b.WriteString(CurrentTheme.Card.Render(card) + "\n")
	}
	for _, d := range ramadan.Duas {
		b.WriteString("\n" + CurrentTheme.Title.Render(d.Title) + "\n")
		b.WriteString(d.Arabic + "\n")
		b.WriteString(CurrentTheme.Dim.Render(d.Transliteration) + "\n")
		b.WriteString(d.Meaning + "\n")
	}
	return b.String()
}

func (m Model) renderCalendar() string {
	if m.rows == nil || m.scheduleLoading {
		return CurrentTheme.Dim.Render("Loading schedule...") + "\n"
	}
	if len(m.rows) == 0 {
		return CurrentTheme.Dim.Render("No schedule data available.") + "\n"
	}

	tf := m.timeFormat()
	var b strings.Builder
	header := fmt.Sprintf("%-4s %-7s %-10s %-10s %-8s", "Day", "Date", "Weekday", "Sehri", "Iftar")
	b.WriteString(CurrentTheme.Title.Render(header) + "\n")

	for _, r := range m.rows {
		line := fmt.Sprintf("%-4d %-7s %-10s %-10s %-8s",
			r.Index, r.Date.Format("02 Jan"), r.Weekday, r.SehriEnd.Format(tf), r.Iftar.Format(tf))
		switch {
		case r.IsToday:
			line = CurrentTheme.Today.Render(line)
		case r.IsFriday:
			line = CurrentTheme.Friday.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderTracker() string {
	key := tracker.DateKey(m.now())
	entry, _ := tracker.Find(m.entries, key)

	var b strings.Builder
	b.WriteString(CurrentTheme.Gold.Render(key) + "\n\n")
	b.WriteString(fmt.Sprintf("%s Roza      %s\n", check(entry.Roza), CurrentTheme.Dim.Render("[r]")))
	b.WriteString(fmt.Sprintf("%s Taraweeh  %s\n", check(entry.Taraweeh), CurrentTheme.Dim.Render("[t]")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Roza completed: %s\n", CurrentTheme.Countdown.Render(fmt.Sprint(tracker.RozaCount(m.entries)))))
	b.WriteString(fmt.Sprintf("Taraweeh prayed: %s\n", CurrentTheme.Countdown.Render(fmt.Sprint(tracker.TaraweehCount(m.entries)))))
	b.WriteString("\n")

	tasbih := CurrentTheme.Label.Render("Tasbih") + "\n" +
		CurrentTheme.Countdown.Render(fmt.Sprintf("%d", m.counter.Count()))
	b.WriteString(CurrentTheme.Card.Render(tasbih) + "\n")
	return b.String()
}

func (m Model) renderSettings() string {
	s := m.deps.Settings
	var b strings.Builder

	row := func(idx int, label, value string) {
		cursor := "  "
		if idx == m.settingsCursor {
			cursor = CurrentTheme.Focused.Render("> ")
			label = CurrentTheme.Focused.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s%-22s %s\n", cursor, label, value))
	}

	b.WriteString(CurrentTheme.Label.Render("Alarms") + "\n")
	for i, name := range prayer.Order {
		state := CurrentTheme.Off.Render("off")
		if s.Notifications[name] {
			state = CurrentTheme.On.Render("on")
		}
		row(i, name, state)
	}

	b.WriteString("\n" + CurrentTheme.Label.Render("General") + "\n")
	row(itemOffset, "Alarm offset", fmt.Sprintf("%d min before", s.NotificationOffset))
	row(itemDistrict, "Location", s.LocationName)
	row(itemRamadan, "Ramadan mode override", onOff(s.IsRamadanOverride))

	if m.adminOpen {
		b.WriteString("\n" + CurrentTheme.Gold.Render("Enter Access Code") + "\n")
		b.WriteString(CurrentTheme.Input.Render(m.adminInput.View()) + "\n")
		if m.adminMsg != "" {
			style := CurrentTheme.Dim
			if m.adminMsg == admin.FailureMessage {
				style = CurrentTheme.Error
			}
			b.WriteString(style.Render(m.adminMsg) + "\n")
		}
	}
	return b.String()
}

func (m Model) helpLine() string {
	if m.adminOpen {
		return "enter confirm • esc cancel"
	}
	switch m.tab {
	case tabTracker:
		return "r roza • t taraweeh • space tasbih • x reset • tab switch • q quit"
	case tabSettings:
		return "↑/↓ move • enter change • tab switch • q quit"
	}
	return "tab/1-4 switch • q quit"
}

func check(done bool) string {
	if done {
		return CurrentTheme.On.Render("[x]")
	}
	return CurrentTheme.Off.Render("[ ]")
}
