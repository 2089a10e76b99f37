package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/model"
)

// View renders the selector.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.rows) == 0 {
		return m.theme.Muted.Render("선택할 상품이 없습니다.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("구매 요청할 상품을 선택하세요"))
	b.WriteByte('\n')

	selection := m.session.Selection()
	row := 0
	for _, g := range m.groups {
		b.WriteString(m.theme.Category.Render(string(g.Category)))
		b.WriteByte('\n')
		for _, p := range g.Products {
			b.WriteString(m.renderRow(p, row == m.cursor, selection.Contains(p.ProductURL)))
			b.WriteByte('\n')
			row++
		}
	}

	footer := fmt.Sprintf("선택 %d개 · 합계 %s원", selection.Len(), model.FormatPrice(selection.Total()))
	b.WriteByte('\n')
	b.WriteString(m.theme.BorderedBox.Render(m.theme.Total.Render(footer)))
	b.WriteByte('\n')

	if m.lastError != nil {
		b.WriteString(m.theme.Error.Render(common.UserMessage(m.lastError)))
		b.WriteByte('\n')
	}

	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) renderRow(p model.Product, current, selected bool) string {
	cursor := "  "
	if current {
		cursor = m.theme.Cursor.Render("> ")
	}
	box := m.theme.Unchecked.Render("[ ]")
	if selected {
		box = m.theme.Checked.Render("[x]")
	}

	parts := []string{cursor + box, m.theme.Brand.Render(p.Brand), p.Name}
	if p.RecommendedSize != "" {
		parts = append(parts, m.theme.Muted.Render("("+p.RecommendedSize+")"))
	}
	parts = append(parts, m.theme.Price.Render(model.FormatPrice(p.Price)+"원"))
	return strings.Join(parts, " ")
}
