package badge

import (
	"testing"
	"time"

	"tickler/internal/model"
)

func TestCountdownFormatting(t *testing.T) {
	cases := []struct {
		diff time.Duration
		want string
	}{
		{-3661 * time.Second, "overdue 1h 1m 1s"},
		{65 * time.Second, "in 1m 5s"},
		{5 * time.Second, "in 5s"},
		{0, "in 0s"},
		{26*time.Hour + 3*time.Second, "in 1d 2h 0m 3s"},
		{-24 * time.Hour, "overdue 1d 0h 0m 0s"},
		{59 * time.Minute, "in 59m 0s"},
		{-90 * time.Second, "overdue 1m 30s"},
	}
	for _, tc := range cases {
		if got := Countdown(tc.diff); got != tc.want {
			t.Fatalf("Countdown(%v) = %q, want %q", tc.diff, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(-time.Second); got != StatusLate {
		t.Fatalf("expected late, got %q", got)
	}
	if got := Classify(0); got != StatusSoon {
		t.Fatalf("expected soon at zero, got %q", got)
	}
	if got := Classify(time.Hour); got != StatusSoon {
		t.Fatalf("expected soon at one hour, got %q", got)
	}
	if got := Classify(time.Hour + time.Second); got != StatusNone {
		t.Fatalf("expected neutral past one hour, got %q", got)
	}
}

func TestRenderCompleted(t *testing.T) {
	task := model.Task{Title: "Ship release", Done: true, Date: "2026-02-10", Time: "09:00"}
	got := Render(task, time.Now())
	if got.Text != "✔ Completed" || got.StyleClass != StatusNone {
		t.Fatalf("unexpected badge: %#v", got)
	}
}

func TestRenderUndated(t *testing.T) {
	got := Render(model.Task{Title: "Someday"}, time.Now())
	if got.Text != "⏳ —" || got.StyleClass != StatusNone {
		t.Fatalf("unexpected badge: %#v", got)
	}
}

func TestRenderDated(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.Local)
	task := model.Task{Title: "Standup", Date: "2026-02-09", Time: "12:01"}
	got := Render(task, now)
	if got.Text != "⏳ 2026-02-09 12:01 • in 1m 0s" {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if got.StyleClass != StatusSoon {
		t.Fatalf("unexpected class: %q", got.StyleClass)
	}
}

func TestRenderOverdue(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 30, 0, time.Local)
	task := model.Task{Title: "Standup", Date: "2026-02-09", Time: "12:00"}
	got := Render(task, now)
	if got.Text != "⏳ 2026-02-09 12:00 • overdue 30s" {
		t.Fatalf("unexpected text: %q", got.Text)
	}
	if got.StyleClass != StatusLate {
		t.Fatalf("unexpected class: %q", got.StyleClass)
	}
}
