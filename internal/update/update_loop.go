package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tickler/internal/badge"
	"tickler/internal/config"
	"tickler/internal/model"
	"tickler/internal/scheduler"
	"tickler/internal/views"
)

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitForReminderCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderMsg{Event: ev}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), waitForReminderCmd(m.reminders))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case TickMsg:
		m.now = time.Time(typed)
		m.refresh()
		if err := m.store.Err(); err != nil {
			m.status = StatusBar{Text: fmt.Sprintf("persist failed: %v", err), IsError: true}
		}
		return m, tickCmd()

	case StateChangedMsg:
		m.refresh()
		return m, nil

	case ReminderMsg:
		next := m.handleReminder(typed.Event)
		return next, waitForReminderCmd(m.reminders)

	case tea.BlurMsg:
		// Terminal lost focus: force a snapshot, the way the page would
		// persist on visibility loss.
		_ = m.store.Persist()
		return m, nil

	case tea.KeyMsg:
		if m.alert != nil {
			// A reminder alert blocks the UI until dismissed.
			if typed.String() == "ctrl+c" {
				m.quitting = true
				_ = m.store.Persist()
				return m, tea.Quit
			}
			m.alert = nil
			return m, nil
		}
		if m.mode == ModeForm {
			return m.handleFormKey(typed)
		}
		return m.handleListKey(typed)
	}
	return m, nil
}

// handleReminder attempts the native notification and falls back to the
// blocking alert when notifications are off or delivery fails.
func (m Model) handleReminder(ev scheduler.Event) Model {
	delivered := false
	if m.cfg.DesktopNotifications {
		delivered = m.notifier.Send(ev.Title, ev.Body) == nil
	}
	if !delivered {
		m.alert = &alertState{title: ev.Title, body: ev.Body}
	}
	m.status = StatusBar{Text: "reminder fired: " + ev.Task.Title}
	m.refresh()
	return m
}

func (m Model) handleListKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch key.String() {
	case "ctrl+c", keys.Quit:
		m.quitting = true
		_ = m.store.Persist()
		return m, tea.Quit
	case keys.Up:
		if m.cursor > 0 {
			m.cursor--
		}
	case keys.Down:
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case keys.Add:
		m.mode = ModeForm
		m.form = newFormState(nil)
	case keys.Edit:
		if t, ok := m.selected(); ok {
			m.mode = ModeForm
			m.form = newFormState(&t)
		}
	case keys.Toggle:
		if t, ok := m.selected(); ok {
			if _, err := m.store.ToggleDone(t.ID); err != nil {
				m.status = StatusBar{Text: fmt.Sprintf("toggle failed: %v", err), IsError: true}
			}
			m.refresh()
		}
	case keys.Delete:
		if t, ok := m.selected(); ok {
			m.store.Remove(t.ID)
			delete(m.notesOpen, t.ID)
			m.refresh()
		}
	case keys.Notes:
		if t, ok := m.selected(); ok && t.Notes != "" {
			m.notesOpen[t.ID] = !m.notesOpen[t.ID]
		}
	case keys.Notify:
		return m.toggleDesktopNotifications()
	}
	return m, nil
}

// toggleDesktopNotifications is the permission-request analog: flip the
// toggle, persist it, and probe the notifier once so the user sees right
// away whether native delivery works.
func (m Model) toggleDesktopNotifications() (tea.Model, tea.Cmd) {
	m.cfg.DesktopNotifications = !m.cfg.DesktopNotifications
	if err := config.Save(m.cfgPath, m.cfg); err != nil {
		m.status = StatusBar{Text: fmt.Sprintf("config save failed: %v", err), IsError: true}
		return m, nil
	}
	if !m.cfg.DesktopNotifications {
		m.status = StatusBar{Text: "desktop notifications off — using alerts"}
		return m, nil
	}
	if err := m.notifier.Send("tickler", "Notifications enabled"); err != nil {
		m.cfg.DesktopNotifications = false
		_ = config.Save(m.cfgPath, m.cfg)
		m.status = StatusBar{Text: "desktop notifications unavailable — using alerts", IsError: true}
		return m, nil
	}
	m.status = StatusBar{Text: "desktop notifications on"}
	return m, nil
}

func (m Model) handleFormKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	switch key.String() {
	case "ctrl+c":
		m.quitting = true
		_ = m.store.Persist()
		return m, tea.Quit
	case keys.Cancel:
		m.mode = ModeList
		return m, nil
	case "tab":
		m.form.cycleFocus(false)
		return m, nil
	case "shift+tab":
		m.form.cycleFocus(true)
		return m, nil
	case keys.Confirm:
		// Enter inside the notes area inserts a newline instead.
		if m.form.focus != formNotes {
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	if m.form.focus == formNotes {
		m.form.notes, cmd = m.form.notes.Update(key)
	} else {
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(key)
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title := m.form.inputs[formTitle].Value()
	date := m.form.inputs[formDate].Value()
	clock := m.form.inputs[formTime].Value()
	notes := m.form.notes.Value()

	if m.form.editingID == "" {
		if _, err := m.store.Add(title, date, clock, notes); err != nil {
			m.status = StatusBar{Text: fmt.Sprintf("add failed: %v", err), IsError: true}
			return m, nil
		}
		m.status = StatusBar{Text: "task added"}
	} else {
		fields := model.Fields{Title: &title, Date: &date, Time: &clock, Notes: &notes}
		if _, err := m.store.Update(m.form.editingID, fields); err != nil {
			m.status = StatusBar{Text: fmt.Sprintf("edit failed: %v", err), IsError: true}
			return m, nil
		}
		m.status = StatusBar{Text: "task updated"}
	}
	m.mode = ModeList
	m.refresh()
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	data := views.AppData{
		Header:     "tickler",
		StatusLine: m.status.Text,
		IsError:    m.status.IsError,
		Footer:     m.footer(),
	}
	if m.mode == ModeForm {
		data.Form = m.formView()
	} else {
		data.Rows = m.rows()
	}
	if m.alert != nil {
		data.Alert = m.alert.title + "\n" + m.alert.body + "\n\npress any key to dismiss"
	}
	return views.RenderApp(data)
}

func (m Model) rows() []views.TaskRowData {
	rows := make([]views.TaskRowData, len(m.tasks))
	for i, t := range m.tasks {
		b := badge.Render(t, m.now)
		rows[i] = views.TaskRowData{
			Title:      t.Title,
			Done:       t.Done,
			Selected:   i == m.cursor,
			BadgeText:  b.Text,
			BadgeClass: string(b.StyleClass),
		}
		if m.notesOpen[t.ID] {
			rows[i].NotesView = views.RenderMarkdown(t.Notes)
		}
	}
	return rows
}

func (m Model) formView() string {
	header := "add task"
	if m.form.editingID != "" {
		header = "edit task"
	}
	return header + "\n\n" +
		m.form.inputs[formTitle].View() + "\n" +
		m.form.inputs[formDate].View() + "\n" +
		m.form.inputs[formTime].View() + "\n" +
		m.form.notes.View()
}

func (m Model) footer() string {
	keys := m.cfg.Keys
	if m.mode == ModeForm {
		return "tab: next field • " + keys.Confirm + ": save • " + keys.Cancel + ": cancel"
	}
	return fmt.Sprintf("%s: add • %s: edit • space: done • %s: delete • %s: notes • %s: notifications • %s: quit",
		keys.Add, keys.Edit, keys.Delete, keys.Notes, keys.Notify, keys.Quit)
}
