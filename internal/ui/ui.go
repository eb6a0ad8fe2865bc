// package ui implements the interactive playlist picker shown when a sort is
// started without naming a playlist.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"lxsort/internal/library"
)

var _ list.Item = playlistItem{}

// playlistItem wraps [library.Summary] to implement [list.Item].
type playlistItem struct {
	summary library.Summary
}

func (i playlistItem) FilterValue() string { return i.summary.Name }
func (i playlistItem) Title() string       { return i.summary.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d songs • id %s", i.summary.Songs, i.summary.ID)
}

// keyMap defines the key bindings for the picker.
type keyMap struct {
	enter key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the picker application state.
type Model struct {
	list   list.Model
	keys   keyMap
	chosen string
	width  int
	height int
}

// NewModel creates a picker over the given playlist summaries.
func NewModel(summaries []library.Summary) Model {
	items := make([]list.Item, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, playlistItem{summary: s})
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = "Select a playlist to sort"
	l.Styles.Title = styles.title
	l.SetShowStatusBar(false)

	return Model{list: l, keys: newKeyMap()}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		// Filtering owns the keyboard while active.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.list.SelectedItem().(playlistItem); ok {
				m.chosen = item.summary.Name
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

// Chosen returns the selected playlist name, empty when the picker was aborted.
func (m Model) Chosen() string {
	return m.chosen
}

// Pick runs the picker and returns the selected playlist name.
//
// Returns a descriptive error when the user aborts without selecting.
func Pick(summaries []library.Summary) (string, error) {
	program := tea.NewProgram(NewModel(summaries), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("picker failed: %w", err)
	}

	model, ok := final.(Model)
	if !ok || model.Chosen() == "" {
		return "", fmt.Errorf("no playlist selected")
	}
	return model.Chosen(), nil
}
