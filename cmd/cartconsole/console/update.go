package console

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update is the event loop. Key handling is a two-mode machine: input mode
// types into the focused field, command mode dispatches panel actions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.cartBusy && !m.itemBusy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case actionMsg:
		m.applyAction(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeCommand {
			return m.updateCommandMode(msg)
		}
		return m.updateInputMode(msg)
	}

	return m, nil
}

// updateInputMode routes keystrokes to the focused field.
func (m Model) updateInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeCommand
		return m, nil
	case tea.KeyTab, tea.KeyEnter:
		m.setFocus(m.focus + 1)
		return m, nil
	case tea.KeyShiftTab:
		m.setFocus(m.focus - 1)
		return m, nil
	}

	fields := m.inputs()
	if m.focus >= len(fields) {
		m.setFocus(0)
		fields = m.inputs()
	}
	var cmd tea.Cmd
	*fields[m.focus], cmd = fields[m.focus].Update(msg)
	return m, cmd
}

// updateCommandMode maps action keys for the panel that owns the focus.
func (m Model) updateCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.mode = modeInput
		return m, nil
	case tea.KeyTab:
		// Jump to the other panel's first field.
		if m.focusedArea() == areaCart {
			m.setFocus(m.cartFieldCount())
		} else {
			m.setFocus(0)
		}
		return m, nil
	}

	key := msg.String()
	if key == "i" {
		m.mode = modeInput
		return m, nil
	}
	if key == "q" {
		return m, tea.Quit
	}

	if m.focusedArea() == areaCart {
		return m.cartCommand(key)
	}
	return m.itemCommand(key)
}

// cartCommand handles the cart panel's action keys.
func (m Model) cartCommand(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n":
		return m, m.dispatch(actionCreateCart)
	case "r":
		return m, m.dispatch(actionRetrieveCart)
	case "e":
		return m, m.dispatch(actionClearCart)
	case "d":
		return m, m.dispatch(actionDeleteCart)
	case "s":
		return m, m.dispatch(actionSearchCarts)
	case "u":
		return m, m.dispatch(actionUpdateCart)
	case "c":
		// Local clear: empty the flash area and reset the panel.
		m.cartStatus.Clear()
		m.clearCartForm()
		return m, nil
	case "a":
		m.addRow()
		return m, nil
	case "x":
		m.removeRow()
		return m, nil
	}
	return m, nil
}

// itemCommand handles the item panel's action keys.
func (m Model) itemCommand(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n":
		return m, m.dispatch(actionCreateItem)
	case "u":
		return m, m.dispatch(actionUpdateItem)
	case "r":
		return m, m.dispatch(actionRetrieveItem)
	case "d":
		return m, m.dispatch(actionDeleteItem)
	case "s":
		return m, m.dispatch(actionSearchItems)
	case "c":
		m.itemStatus.Clear()
		m.clearItemForm()
		return m, nil
	}
	return m, nil
}
