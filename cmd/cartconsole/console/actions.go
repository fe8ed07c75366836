package console

import (
	"context"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"cartconsole/internal/logging"
	"cartconsole/internal/shopcarts"
)

// action enumerates the operator actions. Each one is a short-lived
// transaction: build the request from the forms, run it, then route the
// outcome to the panel's table, form, and status bar.
type action int

const (
	actionCreateCart action = iota
	actionRetrieveCart
	actionClearCart
	actionDeleteCart
	actionSearchCarts
	actionUpdateCart
	actionCreateItem
	actionUpdateItem
	actionRetrieveItem
	actionDeleteItem
	actionSearchItems
)

var actionNames = map[action]string{
	actionCreateCart:   "create-cart",
	actionRetrieveCart: "retrieve-cart",
	actionClearCart:    "clear-cart",
	actionDeleteCart:   "delete-cart",
	actionSearchCarts:  "search-carts",
	actionUpdateCart:   "update-cart",
	actionCreateItem:   "create-item",
	actionUpdateItem:   "update-item",
	actionRetrieveItem: "retrieve-item",
	actionDeleteItem:   "delete-item",
	actionSearchItems:  "search-items",
}

func (a action) String() string { return actionNames[a] }

// area reports which panel an action belongs to.
func (a action) area() area {
	switch a {
	case actionCreateItem, actionUpdateItem, actionRetrieveItem, actionDeleteItem, actionSearchItems:
		return areaItem
	}
	return areaCart
}

// actionMsg is the completion message for one in-flight action.
type actionMsg struct {
	action action
	err    error
	rows   []shopcarts.RenderRow
	ref    *shopcarts.ShopcartRef
	record *shopcarts.ItemRecord
}

// dispatch validates the action's inputs, marks the panel busy, and returns
// the command that runs the call off the event loop. A panel with a call
// already outstanding drops the trigger. Input validation failures surface
// as a red status without any network traffic.
func (m *Model) dispatch(a action) tea.Cmd {
	ar := a.area()
	if m.busy(ar) {
		logging.ConsoleDebug("dropped %s: panel busy", a)
		return nil
	}
	m.status(ar).Clear()

	cmd, err := m.buildCommand(a)
	if err != nil {
		m.status(ar).Report(err.Error(), false)
		return nil
	}

	logging.Console("dispatch %s", a)
	m.setBusy(ar, true)
	return tea.Batch(cmd, m.spin.Tick)
}

// buildCommand is the Building-Request stage: it reads everything the
// action needs from the forms up front, so the returned command touches no
// model state.
func (m *Model) buildCommand(a action) (tea.Cmd, error) {
	client := m.client
	timeout := m.timeout

	run := func(fn func(ctx context.Context) actionMsg) tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			return fn(ctx)
		}
	}

	switch a {
	case actionCreateCart:
		customerID, err := shopcarts.ParseCustomerID(m.customerID.Value())
		if err != nil {
			return nil, err
		}
		return run(func(ctx context.Context) actionMsg {
			ref, err := client.CreateCart(ctx, customerID)
			return actionMsg{action: a, ref: ref, err: err}
		}), nil

	case actionRetrieveCart:
		customerID, err := shopcarts.ParseCustomerID(m.customerID.Value())
		if err != nil {
			return nil, err
		}
		return run(func(ctx context.Context) actionMsg {
			raw, err := client.RetrieveCart(ctx, customerID)
			if err != nil {
				return actionMsg{action: a, err: err}
			}
			rows, _, err := shopcarts.Normalize(shopcarts.SingleCartNested, raw)
			return actionMsg{action: a, rows: rows, err: err}
		}), nil

	case actionClearCart:
		customerID, err := shopcarts.ParseCustomerID(m.customerID.Value())
		if err != nil {
			return nil, err
		}
		return run(func(ctx context.Context) actionMsg {
			return actionMsg{action: a, err: client.ClearCart(ctx, customerID)}
		}), nil

	case actionDeleteCart:
		customerID, err := shopcarts.ParseCustomerID(m.customerID.Value())
		if err != nil {
			return nil, err
		}
		return run(func(ctx context.Context) actionMsg {
			return actionMsg{action: a, err: client.DeleteCart(ctx, customerID)}
		}), nil

	case actionSearchCarts:
		return run(func(ctx context.Context) actionMsg {
			raw, err := client.SearchCarts(ctx)
			if err != nil {
				return actionMsg{action: a, err: err}
			}
			rows, _, err := shopcarts.Normalize(shopcarts.CartList, raw)
			return actionMsg{action: a, rows: rows, err: err}
		}), nil

	case actionUpdateCart:
		customerID, err := shopcarts.ParseCustomerID(m.customerID.Value())
		if err != nil {
			return nil, err
		}
		items := extractItemRows(customerID, m.rows)
		return run(func(ctx context.Context) actionMsg {
			raw, err := client.UpdateCart(ctx, customerID, items)
			if err != nil {
				return actionMsg{action: a, err: err}
			}
			rows, _, err := shopcarts.Normalize(shopcarts.SingleCartFlat, raw)
			return actionMsg{action: a, rows: rows, err: err}
		}), nil

	case actionCreateItem, actionUpdateItem:
		customerID, err := shopcarts.ParseCustomerID(m.itemCustomerID.Value())
		if err != nil {
			return nil, err
		}
		productID, err := shopcarts.ParseItemID(m.itemID.Value())
		if err != nil {
			return nil, err
		}
		quantity, err := shopcarts.ParseQuantity(m.itemQuantity.Value())
		if err != nil {
			return nil, err
		}
		create := a == actionCreateItem
		return run(func(ctx context.Context) actionMsg {
			var rec *shopcarts.ItemRecord
			var callErr error
			if create {
				rec, callErr = client.CreateItem(ctx, customerID, productID, quantity)
			} else {
				rec, callErr = client.UpdateItem(ctx, customerID, productID, quantity)
			}
			return actionMsg{action: a, record: rec, err: callErr}
		}), nil

	case actionRetrieveItem:
		customerID, err := shopcarts.ParseCustomerID(m.itemCustomerID.Value())
		if err != nil {
			return nil, err
		}
		itemID, err := shopcarts.ParseItemID(m.itemID.Value())
		if err != nil {
			return nil, err
		}
		return run(func(ctx context.Context) actionMsg {
			rec, err := client.RetrieveItem(ctx, customerID, itemID)
			return actionMsg{action: a, record: rec, err: err}
		}), nil

	case actionDeleteItem:
		customerID, err := shopcarts.ParseCustomerID(m.itemCustomerID.Value())
		if err != nil {
			return nil, err
		}
		itemID, err := shopcarts.ParseItemID(m.itemID.Value())
		if err != nil {
			return nil, err
		}
		return run(func(ctx context.Context) actionMsg {
			return actionMsg{action: a, err: client.DeleteItem(ctx, customerID, itemID)}
		}), nil

	case actionSearchItems:
		customerID, err := shopcarts.ParseCustomerID(m.itemCustomerID.Value())
		if err != nil {
			return nil, err
		}
		quantity := m.itemQuantity.Value()
		return run(func(ctx context.Context) actionMsg {
			raw, err := client.SearchItems(ctx, customerID, quantity)
			if err != nil {
				return actionMsg{action: a, err: err}
			}
			rows, first, err := shopcarts.Normalize(shopcarts.ItemList, raw)
			return actionMsg{action: a, rows: rows, record: first, err: err}
		}), nil
	}

	return nil, nil
}

// applyAction routes a completed action's outcome to the owning panel.
// This is the one place the success/failure behavior table lives.
func (m *Model) applyAction(msg actionMsg) {
	ar := msg.action.area()
	m.setBusy(ar, false)
	status := m.status(ar)

	if msg.err != nil {
		logging.Console("%s failed: %v", msg.action, msg.err)
		switch msg.action {
		case actionRetrieveCart, actionClearCart:
			// A rejected cart read or clear resets the whole cart panel.
			m.clearCartForm()
			status.Report(shopcarts.FailureMessage(msg.err), false)
		case actionDeleteCart, actionDeleteItem:
			// Delete failures never surface server text; the table and
			// form are left untouched.
			status.Report(shopcarts.MsgServerError, false)
		case actionSearchCarts:
			m.cartTable.Clear()
			status.Report(shopcarts.FailureMessage(msg.err), false)
		case actionRetrieveItem:
			m.clearItemForm()
			status.Report(shopcarts.FailureMessage(msg.err), false)
		case actionSearchItems:
			m.itemTable.Clear()
			status.Report(shopcarts.FailureMessage(msg.err), false)
		default:
			status.Report(shopcarts.FailureMessage(msg.err), false)
		}
		return
	}

	logging.Console("%s succeeded", msg.action)
	switch msg.action {
	case actionCreateCart:
		if msg.ref != nil {
			m.customerID.SetValue(strconv.Itoa(msg.ref.CustomerID))
		}
		status.Report(shopcarts.MsgSuccess, true)

	case actionRetrieveCart, actionSearchCarts, actionUpdateCart:
		m.cartTable.SetRows(rowsToCells(msg.rows))
		status.Report(shopcarts.MsgSuccess, true)

	case actionClearCart:
		m.cartTable.Clear()
		status.Report(shopcarts.MsgSuccess, true)

	case actionDeleteCart:
		m.clearCartForm()
		status.Report(shopcarts.MsgCartDeleted, true)

	case actionCreateItem, actionUpdateItem, actionRetrieveItem:
		m.prefillItemForm(msg.record)
		status.Report(shopcarts.MsgSuccess, true)

	case actionDeleteItem:
		m.clearItemForm()
		status.Report(shopcarts.MsgItemDeleted, true)

	case actionSearchItems:
		m.itemTable.SetRows(rowsToCells(msg.rows))
		m.prefillItemForm(msg.record)
		status.Report(shopcarts.MsgSuccess, true)
	}
}
