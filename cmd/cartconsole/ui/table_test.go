package ui

import (
	"strings"
	"testing"
)

func TestResultTableRenderIsIdempotent(t *testing.T) {
	table := NewResultTable("Shopcart Results", []string{"Customer ID", "Shopcart #", "Item ID", "Quantity"}, "cart_row_")
	table.SetRows([][]string{
		{"42", "1", "1", "3"},
		{"42", "1", "2", "5"},
	})

	styles := DefaultStyles()
	first := table.View(styles)
	second := table.View(styles)
	if first != second {
		t.Fatal("two renders of identical state must be byte-identical")
	}
	if !strings.Contains(first, "42") {
		t.Error("view missing cell content")
	}
}

func TestResultTableEmptyKeepsHeader(t *testing.T) {
	table := NewResultTable("", []string{"Customer ID", "Item ID", "Quantity"}, "item_row_")
	view := table.View(DefaultStyles())
	if !strings.Contains(view, "Customer ID") {
		t.Error("empty table must still show the header row")
	}
	if strings.Contains(view, "item_row_") {
		t.Error("empty table must carry no row identifiers")
	}
}

func TestResultTableRowIDs(t *testing.T) {
	table := NewResultTable("", []string{"A"}, "cart_row_")
	table.SetRows([][]string{{"x"}, {"y"}, {"z"}})
	if got := table.RowID(0); got != "cart_row_0" {
		t.Fatalf("unexpected row id: %q", got)
	}
	view := table.View(DefaultStyles())
	for _, id := range []string{"cart_row_0", "cart_row_1", "cart_row_2"} {
		if !strings.Contains(view, id) {
			t.Errorf("view missing row identifier %s", id)
		}
	}
}

func TestResultTableSetRowsReplacesWholesale(t *testing.T) {
	table := NewResultTable("", []string{"A", "B"}, "row_")
	table.SetRows([][]string{{"stale", "stale"}})
	table.SetRows([][]string{{"fresh", "fresh"}})
	view := table.View(DefaultStyles())
	if strings.Contains(view, "stale") {
		t.Error("stale rows must never survive a new row set")
	}
	table.Clear()
	if table.Len() != 0 {
		t.Error("clear must drop all rows")
	}
}
