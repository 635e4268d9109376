package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	Title      string
	Done       bool
	Selected   bool
	BadgeText  string
	BadgeClass string // "", "soon", "late"
	NotesView  string // rendered markdown, empty when collapsed
}

type AppData struct {
	Header     string
	Rows       []TaskRowData
	Form       string
	Alert      string
	StatusLine string
	IsError    bool
	Footer     string
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	alertStyle    = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2).Foreground(lipgloss.Color("11"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	badgeSoon     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	badgeLate     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	badgePlain    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	notesStyle    = lipgloss.NewStyle().PaddingLeft(4)
)

func RenderApp(data AppData) string {
	lines := []string{headerStyle.Render(data.Header)}

	if data.Form != "" {
		lines = append(lines, panelStyle.Render(data.Form))
	} else if len(data.Rows) == 0 {
		lines = append(lines, panelStyle.Render("no tasks yet"))
	} else {
		var b strings.Builder
		for i, row := range data.Rows {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(renderRow(row))
		}
		lines = append(lines, panelStyle.Render(b.String()))
	}

	if data.Alert != "" {
		lines = append(lines, alertStyle.Render(data.Alert))
	}

	status := statusStyle.Render(data.StatusLine)
	if data.IsError {
		status = errorStyle.Render(data.StatusLine)
	}
	lines = append(lines, status)

	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func renderRow(row TaskRowData) string {
	cursor := "  "
	if row.Selected {
		cursor = "> "
	}
	check := "[ ]"
	if row.Done {
		check = "[x]"
	}

	title := row.Title
	if row.Done {
		title = doneStyle.Render(title)
	} else if row.Selected {
		title = selectedStyle.Render(title)
	}

	line := cursor + check + " " + title + "  " + badgeStyleFor(row.BadgeClass).Render(row.BadgeText)
	if row.NotesView != "" {
		line += "\n" + notesStyle.Render(row.NotesView)
	}
	return line
}

func badgeStyleFor(class string) lipgloss.Style {
	switch class {
	case "late":
		return badgeLate
	case "soon":
		return badgeSoon
	default:
		return badgePlain
	}
}

// RenderMarkdown renders task notes for the expanded panel; on failure the
// raw text is shown instead.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
