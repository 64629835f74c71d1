package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/app/board"
	"taskboard/internal/core/domain"
)

const (
	MsgColorFailed  = "Failed to update color"
	MsgStatusFailed = "Failed to update type"
)

// Palette is the set of background colours the card colour key cycles through.
var Palette = []string{domain.DefaultBgColor, "#fef3c7", "#dbeafe", "#dcfce7", "#fce7f3", "#ede9fe"}

// Board is the part of the board controller the view drives.
type Board interface {
	Refresh(ctx context.Context) error
	Sync(ctx context.Context, signal *board.RefreshSignal) (bool, error)
	Update(ctx context.Context, id string, req dto.UpdateTaskRequest) (domain.Task, error)
	Remove(ctx context.Context, id string) error
	State() board.State
	Buckets() board.Buckets
}

type screen int

const (
	screenBoard screen = iota
	screenForm
	screenConfirm
	screenDetails
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

// loadedMsg is sent once a list fetch finished, successfully or not.
type loadedMsg struct{}

// cardResultMsg carries the outcome of an edit or delete on one card.
type cardResultMsg struct {
	id      string
	err     error
	message string
}

// createdMsg is sent after the new-task form was submitted.
type createdMsg struct {
	task domain.Task
	err  error
}

type Model struct {
	board   Board
	creator board.Creator
	signal  *board.RefreshSignal
	timeout time.Duration

	column int
	row    int
	// cardErrs holds the inline warning of each card whose last edit failed.
	cardErrs map[string]string

	screen screen

	// editing is the id of the task the form edits; empty while creating.
	editing     string
	title       textinput.Model
	description textarea.Model
	focus       formField
	formErr     string

	// pending is the card the delete prompt or the details view is about.
	pending domain.Task

	width, height int
}

func New(b Board, creator board.Creator, signal *board.RefreshSignal, timeout time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter task title"
	ti.CharLimit = domain.MaxTitleLength
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = labelStyle

	ta := textarea.New()
	ta.Placeholder = "Enter task description"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(40)
	ta.SetHeight(4)

	if signal == nil {
		signal = new(board.RefreshSignal)
	}

	return Model{
		board:       b,
		creator:     creator,
		signal:      signal,
		timeout:     timeout,
		cardErrs:    make(map[string]string),
		title:       ti,
		description: ta,
	}
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		m.clampSelection()
		return m, nil

	case cardResultMsg:
		if msg.err != nil {
			text := msg.message
			if text == "" {
				text = msg.err.Error()
			}
			m.cardErrs[msg.id] = text
		} else {
			delete(m.cardErrs, msg.id)
		}
		m.clampSelection()
		return m, nil

	case createdMsg:
		if msg.err != nil {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.closeForm()
		return m, m.sync()

	case tea.KeyMsg:
		switch m.screen {
		case screenForm:
			return m.handleFormKeys(msg)
		case screenConfirm:
			return m.handleConfirmKeys(msg)
		case screenDetails:
			return m.handleDetailsKeys(msg)
		}
		return m.handleBoardKeys(msg)
	}

	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeForm()
		return m, nil
	case "tab", "shift+tab":
		return m, m.switchField()
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		// Enter inside the description starts a new line.
		if m.focus == fieldTitle {
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	if m.focus == fieldTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	title := m.title.Value()
	if strings.TrimSpace(title) == "" {
		m.formErr = board.MsgTitleRequired
		return m, nil
	}
	m.formErr = ""
	description := m.description.Value()

	if m.editing == "" {
		return m, m.submit(title, description)
	}
	id := m.editing
	m.closeForm()
	return m, m.edit(id, title, description)
}

// handleConfirmKeys deletes on y; any other key cancels.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task := m.pending
	m.screen = screenBoard
	m.pending = domain.Task{}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "Y":
		return m, m.remove(task.ID)
	}
	return m, nil
}

func (m Model) handleDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter", "v", "q":
		m.screen = screenBoard
		m.pending = domain.Task{}
	case "e":
		task := m.pending
		if current, ok := m.board.State().Find(task.ID); ok {
			task = current
		}
		m.pending = domain.Task{}
		return m, m.openForm(task.ID, task.Title, task.Description)
	}
	return m, nil
}

func (m Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.refresh()
	case "n":
		return m, m.openForm("", "", "")
	}

	if m.board.State().Phase != board.PhaseReady {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		if m.column > 0 {
			m.column--
		}
		m.clampSelection()
	case "right", "l":
		if m.column < len(domain.TaskStatuses)-1 {
			m.column++
		}
		m.clampSelection()
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		m.row++
		m.clampSelection()
	case "[":
		return m, m.move(-1)
	case "]":
		return m, m.move(1)
	case "c":
		return m, m.recolor()
	case "e":
		if task, ok := m.selected(); ok {
			return m, m.openForm(task.ID, task.Title, task.Description)
		}
	case "v", "enter":
		if task, ok := m.selected(); ok {
			m.screen = screenDetails
			m.pending = task
		}
	case "d":
		if task, ok := m.selected(); ok {
			m.screen = screenConfirm
			m.pending = task
		}
	}

	return m, nil
}

func (m Model) selected() (domain.Task, bool) {
	column := m.board.Buckets().Columns()[m.column]
	if m.row < 0 || m.row >= len(column) {
		return domain.Task{}, false
	}
	return column[m.row], true
}

func (m *Model) clampSelection() {
	column := m.board.Buckets().Columns()[m.column]
	if m.row >= len(column) {
		m.row = len(column) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// openForm shows the task form. An empty id creates a task; otherwise the
// form edits that task starting from the given values.
func (m *Model) openForm(id, title, description string) tea.Cmd {
	m.screen = screenForm
	m.editing = id
	m.formErr = ""
	m.title.SetValue(title)
	m.title.CursorEnd()
	m.description.SetValue(description)
	m.description.Blur()
	m.focus = fieldTitle
	return m.title.Focus()
}

func (m *Model) switchField() tea.Cmd {
	if m.focus == fieldTitle {
		m.focus = fieldDescription
		m.title.Blur()
		return m.description.Focus()
	}
	m.focus = fieldTitle
	m.description.Blur()
	return m.title.Focus()
}

func (m *Model) closeForm() {
	m.screen = screenBoard
	m.editing = ""
	m.formErr = ""
	m.title.Blur()
	m.title.SetValue("")
	m.description.Blur()
	m.description.Reset()
}

func (m Model) opContext() (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), m.timeout)
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		// The failure is already reflected in the board state.
		_ = m.board.Refresh(ctx)
		return loadedMsg{}
	}
}

func (m Model) sync() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		_, _ = m.board.Sync(ctx, m.signal)
		return loadedMsg{}
	}
}

func (m Model) submit(title, description string) tea.Cmd {
	req := dto.CreateTaskRequest{Title: title}
	if strings.TrimSpace(description) != "" {
		req.Description = &description
	}

	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		task, err := board.SubmitTask(ctx, m.creator, m.signal, req)
		return createdMsg{task: task, err: err}
	}
}

// edit replaces the title and description of one card. A failure is shown on
// that card with the message the client reported.
func (m Model) edit(id, title, description string) tea.Cmd {
	req := dto.UpdateTaskRequest{Title: &title, Description: &description}

	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		_, err := m.board.Update(ctx, id, req)
		return cardResultMsg{id: id, err: err}
	}
}

func (m Model) move(step int) tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	target := m.column + step
	if target < 0 || target >= len(domain.TaskStatuses) {
		return nil
	}
	status := domain.TaskStatuses[target]

	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		if _, err := m.board.Update(ctx, task.ID, board.MoveTo(status)); err != nil {
			return cardResultMsg{id: task.ID, err: err, message: MsgStatusFailed}
		}
		return cardResultMsg{id: task.ID}
	}
}

func (m Model) recolor() tea.Cmd {
	task, ok := m.selected()
	if !ok {
		return nil
	}
	color := NextColor(task.BgColor)

	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		if _, err := m.board.Update(ctx, task.ID, board.Recolor(color)); err != nil {
			return cardResultMsg{id: task.ID, err: err, message: MsgColorFailed}
		}
		return cardResultMsg{id: task.ID}
	}
}

func (m Model) remove(id string) tea.Cmd {
	if id == "" {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()
		return cardResultMsg{id: id, err: m.board.Remove(ctx, id)}
	}
}

// NextColor returns the palette entry after current, wrapping around.
func NextColor(current string) string {
	for i, color := range Palette {
		if strings.EqualFold(color, current) {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}
