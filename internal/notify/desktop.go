package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// Desktop sends notifications through the platform's native tool:
// notify-send on Linux and osascript on macOS.
type Desktop struct {
	command string
	args    func(title, message string) []string
	timeout time.Duration
}

// NewDesktop returns the desktop notifier for this platform, or Noop when the
// platform tool is not installed.
func NewDesktop() Notifier {
	d := newDesktop(runtime.GOOS)
	if d == nil {
		return Noop{}
	}
	if _, err := exec.LookPath(d.command); err != nil {
		return Noop{}
	}
	return d
}

func newDesktop(goos string) *Desktop {
	switch goos {
	case "linux", "freebsd", "openbsd":
		return &Desktop{
			command: "notify-send",
			args: func(title, message string) []string {
				return []string{"--app-name=ramadan-pro", title, message}
			},
			timeout: 5 * time.Second,
		}
	case "darwin":
		return &Desktop{
			command: "osascript",
			args: func(title, message string) []string {
				script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(message), strconv.Quote(title))
				return []string{"-e", script}
			},
			timeout: 5 * time.Second,
		}
	}
	return nil
}

// Send implements Notifier.
func (d *Desktop) Send(title, message string) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, d.command, d.args(title, message)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", d.command, err, out)
	}
	return nil
}
