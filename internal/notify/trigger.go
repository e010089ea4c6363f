package notify

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/prayer"
)

// Trigger decides, once per tick, whether the next prayer's alarm is due.
// It is not safe for concurrent use; one tick loop owns it.
type Trigger struct {
	Notifier Notifier
	lastKey  string
}

// NewTrigger returns a Trigger delivering through n.
func NewTrigger(n Notifier) *Trigger {
	return &Trigger{Notifier: n}
}

// LastKey returns the dedupe key of the last notification fired.
func (t *Trigger) LastKey() string {
	return t.lastKey
}

// Due reports whether next is inside the one-minute alarm window:
// offset-1 < minutes until next <= offset.
func Due(next prayer.Prayer, offset int, now time.Time) bool {
	diff := next.Time.Sub(now).Minutes()
	return diff <= float64(offset) && diff > float64(offset-1)
}

// Key is the dedupe key for a notification about name fired at now.
func Key(name string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%d:%d", name, now.Day(), now.Hour(), now.Minute())
}

// Message returns the notification title and body for a prayer.
func Message(name string) (title, body string) {
	return "Time for " + name, "It is almost time for " + name + " prayer."
}

// MaybeNotify fires a notification for next when its alarm is enabled, it is
// due, and nothing has fired yet for the same prayer and minute. It reports
// whether a notification was attempted. A delivery failure is returned but
// still counts as fired so the next tick does not retry.
func (t *Trigger) MaybeNotify(next prayer.Prayer, s *config.Settings, now time.Time) (bool, error) {
	if next.Name == "" || s == nil || !s.Notifications[next.Name] {
		return false, nil
	}
	if !Due(next, s.NotificationOffset, now) {
		return false, nil
	}

	key := Key(next.Name, now)
	if key == t.lastKey {
		return false, nil
	}
	t.lastKey = key

	title, body := Message(next.Name)
	if t.Notifier == nil {
		return true, nil
	}
	if err := t.Notifier.Send(title, body); err != nil {
		return true, fmt.Errorf("notify %s: %w", next.Name, err)
	}
	return true, nil
}
