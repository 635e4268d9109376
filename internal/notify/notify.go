// Package notify is the native-notification side channel. Delivery is best
// effort: a failure surfaces as an error for the caller's fallback alert and
// must never block the tick loop.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

type Notifier interface {
	Send(title, body string) error
}

// Noop swallows notifications; used when desktop notifications are disabled.
type Noop struct{}

func (Noop) Send(string, string) error { return nil }

// Exec shells out to the platform notifier.
type Exec struct{}

func (Exec) Send(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return fmt.Errorf("notify: no notifier for %s", runtime.GOOS)
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
