package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View composes the whole console: cart panel, item panel, and the key
// help footer. Both panels are always visible; the focused one carries an
// accent marker.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("Shopcarts Operator Console"))
	sb.WriteString("\n\n")

	sb.WriteString(m.viewCartPanel())
	sb.WriteString("\n")
	sb.WriteString(m.viewItemPanel())
	sb.WriteString("\n")
	sb.WriteString(m.viewFooter())

	return sb.String()
}

func (m Model) panelMarker(a area) string {
	if m.focusedArea() == a {
		return m.styles.Prompt.Render("▸ ")
	}
	return "  "
}

func (m Model) viewCartPanel() string {
	var sb strings.Builder

	sb.WriteString(m.panelMarker(areaCart))
	sb.WriteString(m.styles.Title.Render("Shopcarts"))
	if m.cartBusy {
		sb.WriteString(" " + m.spin.View())
	}
	sb.WriteString("\n")

	sb.WriteString("  Customer ID: ")
	sb.WriteString(m.customerID.View())
	sb.WriteString("\n")

	sb.WriteString(m.styles.Subtitle.Render("  Items for bulk update:"))
	sb.WriteString("\n")
	for _, row := range m.rows {
		sb.WriteString("    Item ID: ")
		sb.WriteString(row.id.View())
		sb.WriteString("  Quantity: ")
		sb.WriteString(row.qty.View())
		sb.WriteString("\n")
	}

	if status := m.cartStatus.View(m.styles); status != "" {
		sb.WriteString("  " + status + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.cartTable.View(m.styles))

	return sb.String()
}

func (m Model) viewItemPanel() string {
	var sb strings.Builder

	sb.WriteString(m.panelMarker(areaItem))
	sb.WriteString(m.styles.Title.Render("Items"))
	if m.itemBusy {
		sb.WriteString(" " + m.spin.View())
	}
	sb.WriteString("\n")

	sb.WriteString("  Customer ID: ")
	sb.WriteString(m.itemCustomerID.View())
	sb.WriteString("  Item ID: ")
	sb.WriteString(m.itemID.View())
	sb.WriteString("  Quantity: ")
	sb.WriteString(m.itemQuantity.View())
	sb.WriteString("\n")

	if status := m.itemStatus.View(m.styles); status != "" {
		sb.WriteString("  " + status + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.itemTable.View(m.styles))

	return sb.String()
}

func (m Model) viewFooter() string {
	var help string
	if m.mode == modeInput {
		help = "tab/enter: next field • esc: commands • ctrl+c: quit"
	} else if m.focusedArea() == areaCart {
		help = "n: create • r: retrieve • e: empty • d: delete • s: search • u: update • c: clear form • a/x: add/remove row • tab: items • i: edit • q: quit"
	} else {
		help = "n: create • u: update • r: retrieve • d: delete • s: search • c: clear form • tab: shopcarts • i: edit • q: quit"
	}

	width := m.width
	if width <= 0 {
		width = lipgloss.Width(help) + 4
	}
	return m.styles.Footer.Width(width).Render(help)
}
