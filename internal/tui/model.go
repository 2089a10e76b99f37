// Package tui provides the interactive product selector shown after a styling run.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/styling"
	"github.com/Veraticus/easy-style/internal/tui/themes"
)

// Model is the bubbletea model of the product selector.
// Selection state lives in the session; the model only tracks the cursor.
type Model struct {
	lastError error
	session   *styling.Session
	theme     themes.Theme
	keymap    KeyMap
	groups    []styling.CategoryGroup
	rows      []model.Product
	help      help.Model
	cursor    int
	width     int
	confirmed bool
	quitting  bool
}

// NewModel builds a selector over the session's current result.
func NewModel(session *styling.Session, theme themes.Theme) Model {
	groups := session.Groups()
	var rows []model.Product
	for _, g := range groups {
		rows = append(rows, g.Products...)
	}
	return Model{
		session: session,
		theme:   theme,
		keymap:  DefaultKeyMap(),
		groups:  groups,
		rows:    rows,
		help:    help.New(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.lastError = nil

	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0

	case key.Matches(msg, m.keymap.End):
		m.cursor = max(len(m.rows)-1, 0)

	case key.Matches(msg, m.keymap.Toggle):
		if len(m.rows) > 0 {
			if _, err := m.session.Toggle(m.rows[m.cursor].ProductURL); err != nil {
				m.lastError = err
			}
		}

	case key.Matches(msg, m.keymap.SelectAll):
		m.setAll(true)

	case key.Matches(msg, m.keymap.DeselectAll):
		m.setAll(false)

	case key.Matches(msg, m.keymap.Confirm):
		if m.session.Selection().Len() == 0 {
			m.lastError = common.NewUserError(common.MsgEmptyRequest, common.ErrEmptyRequest)
			return m, nil
		}
		m.confirmed = true
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) setAll(selected bool) {
	for _, p := range m.rows {
		if m.session.Selection().Contains(p.ProductURL) == selected {
			continue
		}
		if _, err := m.session.Toggle(p.ProductURL); err != nil {
			m.lastError = err
			return
		}
	}
}

// Confirmed reports whether the user submitted the selection.
func (m Model) Confirmed() bool {
	return m.confirmed
}

// Selected returns the selected products in result order.
func (m Model) Selected() []model.Product {
	return m.session.SelectedProducts()
}
