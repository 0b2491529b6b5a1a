package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dedene/postfmt-cli/internal/styletext"
)

// State represents the current phase of the TUI model.
type State int

const (
	// StatePicking is the fuzzy style picker phase.
	StatePicking State = iota
	// StateInputting is the text input phase.
	StateInputting
	// StateDone means the TUI is finished and ready to quit.
	StateDone
)

// Model is the bubbletea model for the style picker TUI.
type Model struct {
	state     State
	list      list.Model
	selected  *StyleItem
	cancelled bool
	width     int
	height    int
	ready     bool

	// Text input (StateInputting). Skipped when preset text is provided.
	input  textinput.Model
	preset string
	text   string
}

// NewPicker creates a new picker Model with the given list items.
// When preset is non-empty, selecting a style finishes immediately and the
// text input phase is skipped.
func NewPicker(items []list.Item, preset string) Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a style"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return Model{
		state:  StatePicking,
		list:   l,
		preset: preset,
	}
}

// Init returns the initial command. The list handles its own init internally.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
		m.list.SetSize(wsm.Width, wsm.Height-2)

		if m.width > 4 {
			m.input.Width = m.width - 4
		}

		m.ready = true

		return m, nil
	}

	// Dispatch by state.
	switch m.state {
	case StatePicking:
		return m.updatePicking(msg)
	case StateInputting:
		return m.updateInputting(msg)
	}

	return m, nil
}

// updatePicking handles messages in the style picker state.
func (m Model) updatePicking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			m.cancelled = true
			m.state = StateDone

			return m, tea.Quit

		case "esc":
			// Only quit on esc when not actively filtering.
			if m.list.FilterState() != list.Filtering {
				m.cancelled = true
				m.state = StateDone

				return m, tea.Quit
			}

		case "enter":
			// When actively filtering, delegate to list (confirms filter).
			if m.list.FilterState() == list.Filtering {
				break // fall through to list.Update
			}

			return m.handlePickEnter()
		}
	}

	// Delegate to list component.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// View renders the current TUI state.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.state {
	case StatePicking:
		return m.list.View()
	case StateInputting:
		return m.viewInputting()
	}

	return ""
}

// Selected returns the selected style item, or nil if none selected.
func (m Model) Selected() *StyleItem { return m.selected }

// Cancelled returns true if the user cancelled the picker.
func (m Model) Cancelled() bool { return m.cancelled }

// State returns the current picker state.
func (m Model) State() State { return m.state }

// Text returns the confirmed text to transform.
func (m Model) Text() string { return m.text }

// handlePickEnter processes Enter in StatePicking: selects the style and
// transitions to StateInputting, or straight to StateDone with preset text.
func (m Model) handlePickEnter() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(StyleItem)
	if !ok {
		return m, nil
	}

	m.selected = &item

	if m.preset != "" {
		m.text = m.preset
		m.state = StateDone

		return m, tea.Quit
	}

	ti := textinput.New()
	ti.Placeholder = "Text to style"
	ti.CharLimit = 500

	if m.width > 4 {
		ti.Width = m.width - 4
	}

	ti.Focus()
	m.input = ti
	m.state = StateInputting

	return m, textinput.Blink
}

// updateInputting handles messages in the text input state.
func (m Model) updateInputting(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)

		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c":
		m.cancelled = true
		m.state = StateDone

		return m, tea.Quit

	case "esc":
		// Go back to picker.
		m.state = StatePicking
		m.selected = nil
		m.input = textinput.Model{}

		return m, nil

	case "enter":
		m.text = m.input.Value()
		m.state = StateDone

		return m, tea.Quit
	}

	// Delegate to input for typing.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// viewInputting renders the text input form with a live transform preview.
func (m Model) viewInputting() string {
	name := ""
	if m.selected != nil {
		name = m.selected.Name()
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Style: %s\n\n", name)
	fmt.Fprintf(&b, "  Text: %s\n", m.input.View())

	if m.selected != nil && m.input.Value() != "" {
		fmt.Fprintf(&b, "\n  %s\n", styletext.Transcode(m.input.Value(), m.selected.Table()))
	}

	b.WriteString("\n  Enter: confirm | Esc: back | Ctrl+C: quit\n")

	return b.String()
}
