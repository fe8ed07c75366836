// Package console implements the interactive shopcarts operator console:
// two form panels, two result tables, and two status areas, driven by a
// bubbletea event loop. Each operator action is an independent
// request/response cycle; no state survives an action beyond what is
// visible in the forms and tables.
package console

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cartconsole/cmd/cartconsole/ui"
	"cartconsole/internal/shopcarts"
)

// mode is the input handling state: either keystrokes edit the focused
// field, or they dispatch actions for the focused panel.
type mode int

const (
	modeInput mode = iota
	modeCommand
)

// area identifies which panel (and therefore which status bar and results
// table) an action belongs to.
type area int

const (
	areaCart area = iota
	areaItem
)

// itemRow is one editable row of the bulk-update table.
type itemRow struct {
	id  textinput.Model
	qty textinput.Model
}

func newItemRow() itemRow {
	id := textinput.New()
	id.Placeholder = "Item ID"
	id.CharLimit = 16
	id.Width = 12
	qty := textinput.New()
	qty.Placeholder = "Quantity"
	qty.CharLimit = 16
	qty.Width = 12
	return itemRow{id: id, qty: qty}
}

// Model is the bubbletea model for the console.
type Model struct {
	styles ui.Styles
	client *shopcarts.Client

	mode  mode
	focus int

	// Cart panel.
	customerID textinput.Model
	rows       []itemRow

	// Item panel.
	itemCustomerID textinput.Model
	itemID         textinput.Model
	itemQuantity   textinput.Model

	// View-models: each results container and status area is explicit
	// state, updated only by normalized responses or an explicit clear.
	cartTable  *ui.ResultTable
	itemTable  *ui.ResultTable
	cartStatus ui.StatusBar
	itemStatus ui.StatusBar

	spin spinner.Model

	// One outstanding call per panel; re-triggers are dropped while busy.
	cartBusy bool
	itemBusy bool

	timeout time.Duration
	width   int
	height  int
}

// New creates a console bound to the given transport.
func New(client *shopcarts.Client, timeout time.Duration) Model {
	styles := ui.DefaultStyles()

	customerID := textinput.New()
	customerID.Placeholder = "Customer ID"
	customerID.CharLimit = 16
	customerID.Width = 12
	customerID.Focus()

	itemCustomerID := textinput.New()
	itemCustomerID.Placeholder = "Customer ID"
	itemCustomerID.CharLimit = 16
	itemCustomerID.Width = 12

	itemID := textinput.New()
	itemID.Placeholder = "Item ID"
	itemID.CharLimit = 16
	itemID.Width = 12

	itemQuantity := textinput.New()
	itemQuantity.Placeholder = "Quantity"
	itemQuantity.CharLimit = 16
	itemQuantity.Width = 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Prompt

	return Model{
		styles:         styles,
		client:         client,
		customerID:     customerID,
		rows:           []itemRow{newItemRow()},
		itemCustomerID: itemCustomerID,
		itemID:         itemID,
		itemQuantity:   itemQuantity,
		cartTable:      ui.NewResultTable("Shopcart Results", shopcarts.CartSchema, "cart_row_"),
		itemTable:      ui.NewResultTable("Item Results", shopcarts.ItemSchema, "item_row_"),
		spin:           sp,
		timeout:        timeout,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// inputs returns every focusable field in display order: the cart form,
// the editable rows, then the item form.
func (m *Model) inputs() []*textinput.Model {
	fields := []*textinput.Model{&m.customerID}
	for i := range m.rows {
		fields = append(fields, &m.rows[i].id, &m.rows[i].qty)
	}
	fields = append(fields, &m.itemCustomerID, &m.itemID, &m.itemQuantity)
	return fields
}

// cartFieldCount is the number of cart-panel fields (customer id plus the
// editable rows); focus below this belongs to the cart area.
func (m *Model) cartFieldCount() int {
	return 1 + 2*len(m.rows)
}

// focusedArea reports which panel owns the focused field.
func (m *Model) focusedArea() area {
	if m.focus < m.cartFieldCount() {
		return areaCart
	}
	return areaItem
}

// setFocus moves focus to field i, wrapping around.
func (m *Model) setFocus(i int) {
	fields := m.inputs()
	if len(fields) == 0 {
		return
	}
	m.focus = ((i % len(fields)) + len(fields)) % len(fields)
	for j, f := range fields {
		if j == m.focus {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

// addRow appends a fresh editable row after the current last one.
func (m *Model) addRow() {
	m.rows = append(m.rows, newItemRow())
}

// removeRow drops the last editable row; the first row always remains as a
// place to type.
func (m *Model) removeRow() {
	if len(m.rows) <= 1 {
		return
	}
	m.rows = m.rows[:len(m.rows)-1]
	if m.focus >= m.cartFieldCount() {
		// Focus pointed past the removed fields; re-clamp it.
		m.setFocus(m.focus)
	}
}

// busy reports whether the given panel has a call in flight.
func (m *Model) busy(a area) bool {
	if a == areaCart {
		return m.cartBusy
	}
	return m.itemBusy
}

func (m *Model) setBusy(a area, v bool) {
	if a == areaCart {
		m.cartBusy = v
	} else {
		m.itemBusy = v
	}
}

// status returns the status bar for a panel.
func (m *Model) status(a area) *ui.StatusBar {
	if a == areaCart {
		return &m.cartStatus
	}
	return &m.itemStatus
}

// clearCartForm empties the cart form and its results table, the combined
// reset used by delete and by cart-level failure paths.
func (m *Model) clearCartForm() {
	m.customerID.SetValue("")
	m.cartTable.Clear()
}

// clearItemForm empties the item form and its results table.
func (m *Model) clearItemForm() {
	m.itemCustomerID.SetValue("")
	m.itemID.SetValue("")
	m.itemQuantity.SetValue("")
	m.itemTable.Clear()
}

// prefillItemForm writes an item record into the single-item form.
func (m *Model) prefillItemForm(rec *shopcarts.ItemRecord) {
	if rec == nil {
		return
	}
	m.itemCustomerID.SetValue(strconv.Itoa(rec.CustomerID))
	m.itemID.SetValue(rec.ProductID.String())
	m.itemQuantity.SetValue(rec.Quantities.String())
}

// rowsToCells converts normalized rows to the renderer's cell slices.
func rowsToCells(rows []shopcarts.RenderRow) [][]string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = r
	}
	return cells
}
