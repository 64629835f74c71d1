package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/app/board"
	"taskboard/internal/core/domain"
)

const (
	columnWidth = 32
	cardWidth   = columnWidth - 4

	timestampLayout = "2006-01-02 15:04"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(1, 1, 0, 1)

	columnStyle = lipgloss.NewStyle().
			Width(columnWidth).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			Padding(0, 1).
			Foreground(lipgloss.Color("#111827")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)

	formStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

// statusColors mirrors the card accent of each column.
var statusColors = map[domain.TaskStatus]lipgloss.Color{
	domain.TaskStatusTodo:       lipgloss.Color("#22c55e"),
	domain.TaskStatusInProgress: lipgloss.Color("#facc15"),
	domain.TaskStatusDone:       lipgloss.Color("#ef4444"),
}

func (m Model) View() string {
	switch m.screen {
	case screenForm:
		return m.formView()
	case screenConfirm:
		return m.confirmView()
	case screenDetails:
		return m.detailsView()
	}

	state := m.board.State()
	switch state.Phase {
	case board.PhaseLoading:
		return titleStyle.Render("Loading tasks...")
	case board.PhaseError:
		return errorStyle.Padding(0, 1).Render(state.Err) + "\n" + helpStyle.Render("r retry • q quit")
	}

	buckets := m.board.Buckets()
	columns := buckets.Columns()
	rendered := make([]string, 0, len(columns))
	for i, tasks := range columns {
		rendered = append(rendered, m.columnView(i, tasks))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	if n := len(buckets.Other); n > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Padding(0, 1).Render(fmt.Sprintf("%d task(s) with an unknown status are not shown", n)))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ column • ↑/↓ card • [/] move • c colour • e edit • v view • d delete • n new • r refresh • q quit"))
	return b.String()
}

func (m Model) columnView(index int, tasks []domain.Task) string {
	status := domain.TaskStatuses[index]
	header := titleStyle.Foreground(statusColors[status]).Render(fmt.Sprintf("%s (%d)", status, len(tasks)))

	cards := []string{header}
	for row, task := range tasks {
		cards = append(cards, m.cardView(task, index == m.column && row == m.row))
	}
	return columnStyle.Render(lipgloss.JoinVertical(lipgloss.Left, cards...))
}

func (m Model) cardView(task domain.Task, selected bool) string {
	style := cardStyle.
		Background(lipgloss.Color(cardBackground(task.BgColor))).
		BorderForeground(statusColors[task.Status])
	if selected {
		style = style.Bold(true).BorderStyle(lipgloss.ThickBorder())
	}

	lines := []string{task.Title}
	if task.Description != "" {
		lines = append(lines, task.Description)
	}
	if task.DueDate != nil {
		lines = append(lines, "due "+task.DueDate.Format(mapper.DateLayout))
	}
	card := style.Render(strings.Join(lines, "\n"))

	if msg, ok := m.cardErrs[task.ID]; ok {
		card = lipgloss.JoinVertical(lipgloss.Left, card, errorStyle.Render("⚠ "+msg))
	}
	return card
}

func (m Model) formView() string {
	heading, action := "Create New Task", "create"
	if m.editing != "" {
		heading, action = "Edit Task", "save"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Description"))
	b.WriteString("\n")
	b.WriteString(m.description.View())
	if m.formErr != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("⚠ " + m.formErr))
	}
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("tab next field • ctrl+s %s • esc cancel", action)))
	return formStyle.Render(b.String())
}

func (m Model) confirmView() string {
	prompt := fmt.Sprintf("Delete %q? (y/n)", m.pending.Title)
	return formStyle.Render(prompt)
}

// detailsView shows the selected card in full, preferring the latest copy on the board.
func (m Model) detailsView() string {
	task := m.pending
	if current, ok := m.board.State().Find(task.ID); ok {
		task = current
	}

	due := "none"
	if task.DueDate != nil {
		due = task.DueDate.Format(mapper.DateLayout)
	}

	rows := []string{
		titleStyle.Foreground(statusColors[task.Status]).Render(task.Title),
		"",
		detailRow("Status", string(task.Status)),
		detailRow("Created", task.CreatedAt.Local().Format(timestampLayout)),
		detailRow("Due", due),
		detailRow("Description", task.Description),
		detailRow("Details", task.Details),
		"",
		labelStyle.Render("e edit • esc back"),
	}
	return formStyle.Render(strings.Join(rows, "\n"))
}

func detailRow(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-12s", label)) + value
}

func cardBackground(color string) string {
	if domain.ValidColor(color) {
		return color
	}
	return domain.DefaultBgColor
}
