package update

import (
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"tickler/internal/config"
	"tickler/internal/model"
	"tickler/internal/notify"
	"tickler/internal/scheduler"
	"tickler/internal/store"
)

type Mode int

const (
	ModeList Mode = iota
	ModeForm
)

type StatusBar struct {
	Text    string
	IsError bool
}

// Messages driving the loop. TickMsg redraws countdowns once per second;
// StateChangedMsg arrives whenever the store mutated; ReminderMsg carries a
// fired reminder off the scheduler channel.
type (
	TickMsg         time.Time
	StateChangedMsg struct{}
	ReminderMsg     struct{ Event scheduler.Event }
)

type alertState struct {
	title string
	body  string
}

const (
	formTitle = iota
	formDate
	formTime
	formNotes
	formFieldCount
)

type formState struct {
	editingID string // empty while adding
	inputs    [3]textinput.Model
	notes     textarea.Model
	focus     int
}

type Model struct {
	store    *store.Store
	notifier notify.Notifier
	cfg      config.Config
	cfgPath  string

	mode      Mode
	now       time.Time
	tasks     []model.Task
	cursor    int
	notesOpen map[string]bool
	form      formState
	alert     *alertState
	status    StatusBar
	reminders <-chan scheduler.Event
	quitting  bool
}

func NewModel(s *store.Store, notifier notify.Notifier, cfg config.Config, cfgPath string, reminders <-chan scheduler.Event) Model {
	now := time.Now()
	return Model{
		store:     s,
		notifier:  notifier,
		cfg:       cfg,
		cfgPath:   cfgPath,
		now:       now,
		tasks:     s.Ranked(now),
		notesOpen: make(map[string]bool),
		reminders: reminders,
	}
}

func (m *Model) refresh() {
	m.tasks = m.store.Ranked(m.now)
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() (model.Task, bool) {
	if len(m.tasks) == 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func newFormState(editing *model.Task) formState {
	f := formState{}
	labels := [3]string{"title", "YYYY-MM-DD", "HH:MM"}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 200
		f.inputs[i] = in
	}
	f.inputs[formDate].CharLimit = 10
	f.inputs[formTime].CharLimit = 5
	f.notes = textarea.New()
	f.notes.Placeholder = "notes (markdown)"
	f.notes.SetHeight(3)

	if editing != nil {
		f.editingID = editing.ID
		f.inputs[formTitle].SetValue(editing.Title)
		f.inputs[formDate].SetValue(editing.Date)
		f.inputs[formTime].SetValue(editing.Time)
		f.notes.SetValue(editing.Notes)
	}
	f.inputs[formTitle].Focus()
	return f
}

func (f *formState) focusField(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	if i == formNotes {
		f.notes.Focus()
	} else {
		f.notes.Blur()
	}
}

func (f *formState) cycleFocus(backward bool) {
	next := f.focus + 1
	if backward {
		next = f.focus - 1
	}
	if next < 0 {
		next = formFieldCount - 1
	}
	if next >= formFieldCount {
		next = 0
	}
	f.focusField(next)
}
