package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyTitle = errors.New("model: task title is required")

// dueLayout combines the Date and Time fields as a local wall-clock instant.
const dueLayout = "2006-01-02 15:04"

type Task struct {
	ID       string
	Title    string
	Date     string // YYYY-MM-DD, may be empty
	Time     string // HH:MM, may be empty
	Notes    string
	Done     bool
	Notified bool
	Created  time.Time
}

// New builds a task with a fresh ID. Date and time are stored verbatim;
// malformed values degrade to an undated task rather than failing here.
func New(title, date, clock, notes string, now time.Time) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	return Task{
		ID:      uuid.NewString(),
		Title:   title,
		Date:    strings.TrimSpace(date),
		Time:    strings.TrimSpace(clock),
		Notes:   strings.TrimSpace(notes),
		Created: now,
	}, nil
}

// DueAt resolves the task's due instant in the local timezone. The second
// return is false for undated tasks and for malformed date/time fields.
func (t Task) DueAt() (time.Time, bool) {
	if t.Date == "" || t.Time == "" {
		return time.Time{}, false
	}
	due, err := time.ParseInLocation(dueLayout, t.Date+" "+t.Time, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// Fields carries a partial edit. Nil members are left untouched.
type Fields struct {
	Title *string
	Date  *string
	Time  *string
	Notes *string
}

func (f Fields) empty() bool {
	return f.Title == nil && f.Date == nil && f.Time == nil && f.Notes == nil
}

// Apply merges the edit into a copy of the task. Any supplied field re-arms
// the reminder by clearing Notified. A title that trims to empty keeps the
// previous title, so an edit can never produce an untitled task.
func (t Task) Apply(f Fields) Task {
	if f.empty() {
		return t
	}
	out := t
	if f.Title != nil {
		if title := strings.TrimSpace(*f.Title); title != "" {
			out.Title = title
		}
	}
	if f.Date != nil {
		out.Date = strings.TrimSpace(*f.Date)
	}
	if f.Time != nil {
		out.Time = strings.TrimSpace(*f.Time)
	}
	if f.Notes != nil {
		out.Notes = strings.TrimSpace(*f.Notes)
	}
	out.Notified = false
	return out
}
