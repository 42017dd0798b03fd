package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var cellStyle = lipgloss.NewStyle().PaddingRight(2)

// RenderTable lays rows out under a header rule with no outer border.
// Short rows are padded with empty cells.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(headers))
		copy(cells, row)
		padded[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(padded...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader.PaddingRight(2)
			}
			return cellStyle
		})
	return t.Render() + "\n"
}
