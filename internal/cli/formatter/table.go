package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible text, so styled cells line up.
// Empty cells are shown as a dimmed "--".
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	return renderRows(headers, rows, true)
}

// RenderRows aligns rows like RenderTable but without a header.
func RenderRows(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	return renderRows(make([]string, len(rows[0])), rows, false)
}

func renderRows(headers []string, rows [][]string, withHeader bool) string {
	cols := len(headers)

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, cols)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if cell == "" {
				cell = Dim("--")
			}
			cells[r][i] = cell
		}
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	if withHeader {
		styled := make([]string, cols)
		for i, h := range headers {
			styled[i] = StyleHeader.Render(h)
		}
		writeRow(&b, styled, widths)

		sep := make([]string, cols)
		for i, w := range widths {
			sep[i] = StyleDim.Render(strings.Repeat("─", w))
		}
		writeRow(&b, sep, widths)
	}

	for _, row := range cells {
		writeRow(&b, row, widths)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(cells) - 1
	for i, cell := range cells {
		b.WriteString(cell)
		if i < last {
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}

// RenderFields renders label/value pairs with the labels padded to one width.
func RenderFields(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p[0]); w > width {
			width = w
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		value := p[1]
		if value == "" {
			value = Dim("--")
		}
		label := strings.ToUpper(p[0]) + strings.Repeat(" ", width-lipgloss.Width(p[0]))
		b.WriteString(StyleDim.Render(label) + "  " + value + "\n")
	}
	return b.String()
}
