package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultTable is one results container: a column schema plus the rows from
// the most recent successful (or explicitly cleared) response. SetRows
// replaces the row set wholesale, so stale rows can never mix with new
// ones. Rendering is a pure function of the fields; calling View twice
// yields identical output.
type ResultTable struct {
	Title     string
	Schema    []string
	RowPrefix string // stable per-row identifier prefix, e.g. "cart_row_"
	Rows      [][]string
}

// NewResultTable creates an empty table with the given schema.
func NewResultTable(title string, schema []string, rowPrefix string) *ResultTable {
	return &ResultTable{Title: title, Schema: schema, RowPrefix: rowPrefix}
}

// SetRows replaces the table contents.
func (t *ResultTable) SetRows(rows [][]string) {
	t.Rows = rows
}

// Clear empties the table; the header remains visible, matching an empty
// result set.
func (t *ResultTable) Clear() {
	t.Rows = nil
}

// Len returns the number of data rows.
func (t *ResultTable) Len() int { return len(t.Rows) }

// RowID returns the stable identifier for row i, recomputed from position.
func (t *ResultTable) RowID(i int) string {
	return t.RowPrefix + strconv.Itoa(i)
}

// View renders the table fragment: title, header row, rule, then one line
// per row with its identifier in a muted gutter.
func (t *ResultTable) View(styles Styles) string {
	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	gutterWidth := lipgloss.Width(t.RowID(maxInt(len(t.Rows)-1, 0))) + 1

	colWidths := make([]int, len(t.Schema))
	for i, h := range t.Schema {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	gutterStyle := styles.Muted

	sb.WriteString(strings.Repeat(" ", gutterWidth))
	for i, h := range t.Schema {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.Schema)-1 {
			sb.WriteString(gutterStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := gutterWidth + len(t.Schema) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(gutterStyle.Render(strings.Repeat("-", totalWidth)))
	sb.WriteString("\n")

	for r, row := range t.Rows {
		id := t.RowID(r)
		sb.WriteString(gutterStyle.Render(id))
		sb.WriteString(strings.Repeat(" ", maxInt(gutterWidth-lipgloss.Width(id), 1)))
		for i := range t.Schema {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			sb.WriteString(rowStyle.Width(colWidths[i]).Render(cell))
			if i < len(t.Schema)-1 {
				sb.WriteString(gutterStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
