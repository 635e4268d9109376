// Package badge derives the per-task countdown text and urgency class the
// list view renders next to each task.
package badge

import (
	"fmt"
	"strings"
	"time"

	"tickler/internal/model"
)

type Status string

const (
	StatusNone Status = ""
	StatusSoon Status = "soon"
	StatusLate Status = "late"
)

// Classify buckets a countdown for styling: late once the instant has
// passed, soon inside the final hour, neutral otherwise.
func Classify(diff time.Duration) Status {
	switch {
	case diff < 0:
		return StatusLate
	case diff <= time.Hour:
		return StatusSoon
	default:
		return StatusNone
	}
}

// Countdown renders a signed offset as "in 1m 5s" or "overdue 1h 1m 1s".
// Units are fixed d/h/m/s; higher units appear only when non-zero, and once
// one appears every lower unit is shown. Seconds always render.
func Countdown(diff time.Duration) string {
	prefix := "in"
	if diff < 0 {
		prefix = "overdue"
		diff = -diff
	}
	d := int64(diff / (24 * time.Hour))
	h := int64(diff/time.Hour) % 24
	m := int64(diff/time.Minute) % 60
	s := int64(diff/time.Second) % 60

	parts := make([]string, 0, 4)
	if d > 0 {
		parts = append(parts, fmt.Sprintf("%dd", d))
	}
	if h > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || len(parts) > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))

	return prefix + " " + strings.Join(parts, " ")
}

type Badge struct {
	Text       string
	StyleClass Status
}

// Render produces the display badge for a task at the given instant.
func Render(t model.Task, now time.Time) Badge {
	if t.Done {
		return Badge{Text: "✔ Completed"}
	}
	due, ok := t.DueAt()
	if !ok {
		return Badge{Text: "⏳ —"}
	}
	diff := due.Sub(now)
	return Badge{
		Text:       fmt.Sprintf("⏳ %s %s • %s", t.Date, t.Time, Countdown(diff)),
		StyleClass: Classify(diff),
	}
}
