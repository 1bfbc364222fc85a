// Package tui is the interactive terminal view for a board.Store, built on
// Bubble Tea. Input goes through the Store guards; the view is rebuilt from
// the latest snapshot.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/tasktree/internal/render"
	"github.com/mesh-intelligence/tasktree/pkg/board"
	"github.com/mesh-intelligence/tasktree/pkg/types"
)

type focus int

const (
	focusCategoryInput focus = iota
	focusBoard
	focusTaskInput
)

// changedMsg reports that the Store produced a new snapshot.
type changedMsg struct{}

var (
	helpStyle   = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Italic(true)
	buttonStyle = lipgloss.NewStyle().Bold(true)
)

// Model is the Bubble Tea model for the board.
type Model struct {
	store     *board.Store
	state     types.State
	catInput  textinput.Model
	taskInput textinput.Model
	focus     focus
	cat       int
	task      int
	width     int
	status    string
	showIDs   bool
	quitting  bool
}

// New returns a Model bound to store with the category input focused.
func New(store *board.Store) Model {
	ci := textinput.New()
	ci.Placeholder = "New Category (e.g. Work, Home)"
	ci.CharLimit = 128
	ci.Width = 40
	ci.Focus()

	ti := textinput.New()
	ti.Placeholder = "Add task..."
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		store:     store,
		state:     store.State(),
		catInput:  ci,
		taskInput: ti,
		focus:     focusCategoryInput,
		task:      -1,
	}
}

// State returns the snapshot the model last rendered from.
func (m Model) State() types.State {
	return m.state
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and Store snapshots.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.refresh()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.focus {
		case focusCategoryInput:
			return m.updateCategoryInput(msg)
		case focusTaskInput:
			return m.updateTaskInput(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m Model) updateCategoryInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.store.SubmitCategory(m.catInput.Value()) {
			m.catInput.SetValue("")
			m.refresh()
			m.cat = m.state.Len() - 1
			m.task = -1
			m.status = "Added category"
		}
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		if m.state.Len() == 0 {
			return m, nil
		}
		return m.setFocus(focusBoard), nil
	case tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.catInput, cmd = m.catInput.Update(msg)
	return m, cmd
}

func (m Model) updateTaskInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		cat, ok := m.state.CategoryAt(m.cat)
		if !ok {
			return m.setFocus(focusBoard), nil
		}
		if m.store.SubmitTask(cat.ID, m.taskInput.Value()) {
			m.taskInput.SetValue("")
			m.refresh()
			if c, ok := m.state.CategoryAt(m.cat); ok {
				m.task = len(c.Tasks) - 1
			}
			m.status = "Added task to " + cat.Name
		}
		return m, nil
	case tea.KeyEsc, tea.KeyTab:
		m.taskInput.SetValue("")
		return m.setFocus(focusBoard), nil
	}
	var cmd tea.Cmd
	m.taskInput, cmd = m.taskInput.Update(msg)
	return m, cmd
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "tab", "n":
		return m.setFocus(focusCategoryInput), nil
	case "a", "enter":
		if m.state.Len() == 0 {
			return m, nil
		}
		return m.setFocus(focusTaskInput), nil
	case "up", "k":
		if m.task > 0 {
			m.task--
		} else if m.task == 0 {
			m.task = -1
		} else if m.cat > 0 {
			m.cat--
			m.task = m.lastTask()
		} else {
			return m.setFocus(focusCategoryInput), nil
		}
	case "down", "j":
		if m.task < m.lastTask() {
			m.task++
		} else if m.cat < m.state.Len()-1 {
			m.cat++
			m.task = -1
		}
	case "left", "h":
		if m.cat > 0 {
			m.cat--
			m.task = -1
		}
	case "right", "l":
		if m.cat < m.state.Len()-1 {
			m.cat++
			m.task = -1
		}
	case "d", "x", "delete":
		m.deleteSelected()
	case "i":
		m.showIDs = !m.showIDs
	}
	return m, nil
}

func (m *Model) deleteSelected() {
	cat, ok := m.state.CategoryAt(m.cat)
	if !ok {
		return
	}
	t, ok := cat.TaskAt(m.task)
	if !ok {
		return
	}
	m.store.RemoveTask(cat.ID, t.ID)
	m.refresh()
	m.status = fmt.Sprintf("Deleted %q", t.Text)
}

func (m Model) setFocus(f focus) Model {
	m.focus = f
	m.catInput.Blur()
	m.taskInput.Blur()
	switch f {
	case focusCategoryInput:
		m.catInput.Focus()
	case focusTaskInput:
		m.taskInput.Focus()
	case focusBoard:
		m.clamp()
	}
	return m
}

// refresh pulls the latest snapshot from the store.
func (m *Model) refresh() {
	m.state = m.store.State()
	m.clamp()
}

// clamp keeps the cursor inside the current snapshot. A task cursor of -1
// selects the category heading.
func (m *Model) clamp() {
	if m.state.Len() == 0 {
		m.cat, m.task = 0, -1
		if m.focus != focusCategoryInput {
			m.focus = focusCategoryInput
			m.taskInput.Blur()
			m.catInput.Focus()
		}
		return
	}
	if m.cat >= m.state.Len() {
		m.cat = m.state.Len() - 1
	}
	if m.cat < 0 {
		m.cat = 0
	}
	if m.task > m.lastTask() {
		m.task = m.lastTask()
	}
	if m.task < -1 {
		m.task = -1
	}
}

func (m Model) lastTask() int {
	c, ok := m.state.CategoryAt(m.cat)
	if !ok {
		return -1
	}
	return len(c.Tasks) - 1
}

// View renders the input row, the cards, and a key help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	opts := render.DefaultOptions()
	opts.ShowIDs = m.showIDs
	if m.width > 4 {
		opts.Width = m.width - 4
	}
	if m.focus != focusCategoryInput {
		opts.ActiveCategory = m.cat
		opts.ActiveTask = m.task
	}
	if m.focus == focusTaskInput {
		opts.Footer = m.taskInput.View() + " " + buttonStyle.Render("[Add]")
	}

	var b strings.Builder
	b.WriteString(render.Board(m.state, opts))
	b.WriteString("\n")
	b.WriteString(m.catInput.View())
	b.WriteString(" ")
	b.WriteString(buttonStyle.Render("[+ Add Category]"))
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) help() string {
	switch m.focus {
	case focusCategoryInput:
		return "enter: add category • tab: board • esc: quit"
	case focusTaskInput:
		return "enter: add task • esc: back"
	default:
		return "↑/↓: move • ←/→: category • a: add task • d: delete • i: ids • tab: new category • q: quit"
	}
}
