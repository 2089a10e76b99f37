package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/styling"
	"github.com/Veraticus/easy-style/internal/testutil"
	"github.com/Veraticus/easy-style/internal/tui/themes"
)

func newSession(t *testing.T) *styling.Session {
	t.Helper()
	s := styling.NewSession()
	token, err := s.Begin()
	require.NoError(t, err)
	require.NoError(t, s.Apply(token, testutil.SampleResult()))
	return s
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRowsFollowCategoryOrder(t *testing.T) {
	m := NewModel(newSession(t), themes.Default)
	require.Len(t, m.rows, 3)
	assert.Equal(t, model.CategoryTop, m.rows[0].Category)
	assert.Equal(t, model.CategoryBottom, m.rows[1].Category)
	assert.Equal(t, model.CategoryShoes, m.rows[2].Category)
}

func TestToggleAndConfirm(t *testing.T) {
	session := newSession(t)
	m := NewModel(session, themes.Default)

	m = press(t, m, keyDown, keySpace)
	assert.Equal(t, 2, session.Selection().Len())
	assert.Equal(t, int64(89000+119000), session.Selection().Total())

	next, cmd := m.Update(keyEnter)
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Confirmed())

	selected := m.Selected()
	require.Len(t, selected, 2)
	assert.Equal(t, "COS", selected[0].Brand)
	assert.Equal(t, "뉴발란스", selected[1].Brand)
}

func TestCursorStaysInBounds(t *testing.T) {
	m := NewModel(newSession(t), themes.Default)

	m = press(t, m, keyUp)
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, keyDown, keyDown, keyDown, keyDown)
	assert.Equal(t, 2, m.cursor)
	m = press(t, m, runes("g"))
	assert.Equal(t, 0, m.cursor)
	m = press(t, m, runes("G"))
	assert.Equal(t, 2, m.cursor)
}

func TestConfirmRequiresSelection(t *testing.T) {
	session := newSession(t)
	m := NewModel(session, themes.Default)

	m = press(t, m, runes("d"))
	assert.Zero(t, session.Selection().Len())

	next, cmd := m.Update(keyEnter)
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.False(t, m.Confirmed())
	assert.ErrorIs(t, m.lastError, common.ErrEmptyRequest)
	assert.Contains(t, m.View(), common.MsgEmptyRequest)

	m = press(t, m, runes("a"))
	assert.Equal(t, 3, session.Selection().Len())
	assert.Nil(t, m.lastError)
}

func TestQuitWithoutConfirming(t *testing.T) {
	m := NewModel(newSession(t), themes.Default)
	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.False(t, m.Confirmed())
	assert.Empty(t, m.View())
}

func TestViewShowsSelectionAndTotal(t *testing.T) {
	m := NewModel(newSession(t), themes.Default)
	view := m.View()

	for _, want := range []string{"상의", "하의", "신발", "COS", "(L)", "89,000원", "선택 3개", "337,000원"} {
		assert.Contains(t, view, want)
	}
	assert.Equal(t, 3, strings.Count(view, "[x]"))
}

func TestSelectProductsRequiresResult(t *testing.T) {
	_, err := SelectProducts(context.Background(), styling.NewSession())
	assert.ErrorIs(t, err, common.ErrNoResult)
}
