package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dedene/postfmt-cli/internal/styletext"
)

func testItems() []list.Item {
	return []list.Item{
		NewStyleItem("bold", styletext.Bold),
		NewStyleItem("script", styletext.Script),
	}
}

func sizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: 80, Height: 24}
}

func readyModel(t *testing.T, preset string) Model {
	t.Helper()

	m := NewPicker(testItems(), preset)
	result, _ := m.Update(sizeMsg())

	model, ok := result.(Model)
	require.True(t, ok)

	return model
}

func TestNewPicker_InitialState(t *testing.T) {
	m := NewPicker(testItems(), "")

	assert.Equal(t, StatePicking, m.State())
	assert.False(t, m.Cancelled())
	assert.Nil(t, m.Selected())
	assert.False(t, m.ready)
}

func TestPicker_WindowSizeMsg(t *testing.T) {
	m := NewPicker(testItems(), "")

	result, _ := m.Update(sizeMsg())
	model := result.(Model)

	assert.True(t, model.ready)
	assert.Equal(t, 80, model.width)
	assert.Equal(t, 24, model.height)
}

func TestPicker_EnterTransitionsToInputting(t *testing.T) {
	m := readyModel(t, "")

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := result.(Model)

	assert.Equal(t, StateInputting, model.State())
	require.NotNil(t, model.Selected())
	assert.Equal(t, "bold", model.Selected().Name())
}

func TestPicker_PresetSkipsInput(t *testing.T) {
	m := readyModel(t, "hello world")

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := result.(Model)

	assert.Equal(t, StateDone, model.State())
	require.NotNil(t, model.Selected())
	assert.Equal(t, "bold", model.Selected().Name())
	assert.Equal(t, "hello world", model.Text())
}

func TestPicker_CtrlCCancels(t *testing.T) {
	m := readyModel(t, "")

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	model := result.(Model)

	assert.Equal(t, StateDone, model.State())
	assert.True(t, model.Cancelled())
	assert.Nil(t, model.Selected())
}

func TestPicker_EscCancels(t *testing.T) {
	m := readyModel(t, "")

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	model := result.(Model)

	assert.Equal(t, StateDone, model.State())
	assert.True(t, model.Cancelled())
	assert.Nil(t, model.Selected())
}

func TestPicker_ViewLoading(t *testing.T) {
	m := NewPicker(testItems(), "")

	assert.Equal(t, "Loading...", m.View())
}

func TestPicker_ViewAfterReady(t *testing.T) {
	m := readyModel(t, "")

	view := m.View()
	assert.NotEmpty(t, view)
	assert.NotEqual(t, "Loading...", view)
}

func TestStyleItem_Title(t *testing.T) {
	item := NewStyleItem("fraktur", styletext.Fraktur)
	assert.Equal(t, "fraktur", item.Title())
}

func TestStyleItem_Description_Transcoded(t *testing.T) {
	item := NewStyleItem("bold", styletext.Bold)
	assert.Equal(t, styletext.Transcode("The quick brown Fox 123", styletext.Bold), item.Description())
	assert.NotContains(t, item.Description(), "quick", "sample letters should be substituted")
}

func TestStyleItem_FilterValue(t *testing.T) {
	item := NewStyleItem("smallcaps", styletext.SmallCaps)
	assert.Equal(t, "smallcaps", item.FilterValue())
}

// --- Text Input (StateInputting) Tests ---

// inputtingModel returns a model transitioned to StateInputting via Enter on bold.
func inputtingModel(t *testing.T) Model {
	t.Helper()

	m := readyModel(t, "")

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := result.(Model)
	require.True(t, ok)
	require.Equal(t, StateInputting, model.State())

	return model
}

func TestInputting_EnterConfirms(t *testing.T) {
	m := inputtingModel(t)

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hello")})
	m = result.(Model)

	result, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := result.(Model)

	assert.Equal(t, StateDone, model.State())
	assert.False(t, model.Cancelled())
	assert.Equal(t, "hello", model.Text())
}

func TestInputting_EscReturnsToPicking(t *testing.T) {
	m := inputtingModel(t)

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	model := result.(Model)

	assert.Equal(t, StatePicking, model.State())
	assert.Nil(t, model.Selected())
}

func TestInputting_CtrlCCancels(t *testing.T) {
	m := inputtingModel(t)

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	model := result.(Model)

	assert.Equal(t, StateDone, model.State())
	assert.True(t, model.Cancelled())
}

func TestInputting_ViewContainsStyleName(t *testing.T) {
	m := inputtingModel(t)

	view := m.View()
	assert.Contains(t, view, "Style: bold")
	assert.Contains(t, view, "Text:")
}

func TestInputting_ViewShowsLivePreview(t *testing.T) {
	m := inputtingModel(t)

	result, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("go")})
	model := result.(Model)

	assert.Contains(t, model.View(), styletext.Transcode("go", styletext.Bold))
}

func TestText_EmptyBeforeConfirm(t *testing.T) {
	m := inputtingModel(t)
	assert.Empty(t, m.Text())
}
