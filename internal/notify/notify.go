// Package notify fires prayer alarms and delivers them as desktop
// notifications.
package notify

import (
	"errors"

	"github.com/rs/zerolog"
)

// Notifier delivers a user-visible notification.
type Notifier interface {
	Send(title, message string) error
}

// Noop discards notifications.
type Noop struct{}

// Send implements Notifier.
func (Noop) Send(title, message string) error { return nil }

// Log writes notifications to a zerolog logger. It is used headless and as
// a trace alongside the desktop notifier.
type Log struct {
	Logger zerolog.Logger
}

// Send implements Notifier.
func (l Log) Send(title, message string) error {
	l.Logger.Info().Str("title", title).Str("message", message).Msg("notification")
	return nil
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

// Send implements Notifier.
func (m Multi) Send(title, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(title, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
