package shopcarts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeSingleCartNested(t *testing.T) {
	payload := []byte(`{"customer_id":42,"shopcarts":[{"items":[{"item_id":1,"quantity":3}]}]}`)
	rows, first, err := Normalize(SingleCartNested, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if first != nil {
		t.Fatalf("nested shape should not produce a pre-fill record")
	}
	want := []RenderRow{{"42", "1", "1", "3"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeSingleCartNestedIndexesCarts(t *testing.T) {
	payload := []byte(`{"customer_id":9,"shopcarts":[
		{"items":[{"item_id":1,"quantity":1}]},
		{"items":[{"item_id":2,"quantity":5},{"item_id":3,"quantity":6}]}
	]}`)
	rows, _, err := Normalize(SingleCartNested, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	want := []RenderRow{
		{"9", "1", "1", "1"},
		{"9", "2", "2", "5"},
		{"9", "2", "3", "6"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeSingleCartFlat(t *testing.T) {
	payload := []byte(`{"customer_id":7,"items":[{"product_id":9,"quantities":4},{"product_id":"SKU-1","quantities":"2"}]}`)
	rows, _, err := Normalize(SingleCartFlat, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	want := []RenderRow{
		{"7", "1", "9", "4"},
		{"7", "1", "SKU-1", "2"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeReconcilesFieldNames(t *testing.T) {
	// The nested shape usually says item_id/quantity, but either spelling
	// must land in the same column.
	payload := []byte(`{"customer_id":3,"shopcarts":[{"items":[{"product_id":8,"quantities":2}]}]}`)
	rows, _, err := Normalize(SingleCartNested, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	want := []RenderRow{{"3", "1", "8", "2"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeCartList(t *testing.T) {
	payload := []byte(`{"shopcart_lists":[{"customer_id":1},{"customer_id":2}]}`)
	rows, _, err := Normalize(CartList, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	want := []RenderRow{
		{"1", "1", "", ""},
		{"2", "1", "", ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeItemList(t *testing.T) {
	payload := []byte(`{"customer_id":5,"items":[{"item_id":7,"quantity":2},{"item_id":9,"quantity":1}]}`)
	rows, first, err := Normalize(ItemList, payload)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	want := []RenderRow{
		{"5", "7", "2"},
		{"5", "9", "1"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if first == nil {
		t.Fatal("expected a pre-fill record for the first item")
	}
	if first.CustomerID != 5 || first.ProductID != "7" || first.Quantities != "2" {
		t.Fatalf("unexpected pre-fill record: %+v", first)
	}
}

func TestNormalizeItemListEmpty(t *testing.T) {
	rows, first, err := Normalize(ItemList, []byte(`{"customer_id":5,"items":[]}`))
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected zero rows, got %d", len(rows))
	}
	if first != nil {
		t.Fatalf("empty result must not pre-fill the form, got %+v", first)
	}
}

func TestNormalizeMissingArrayYieldsZeroRows(t *testing.T) {
	cases := map[Shape][]byte{
		SingleCartNested: []byte(`{"customer_id":1}`),
		SingleCartFlat:   []byte(`{"customer_id":1}`),
		CartList:         []byte(`{}`),
		ItemList:         []byte(`{"customer_id":1}`),
	}
	for shape, payload := range cases {
		rows, _, err := Normalize(shape, payload)
		if err != nil {
			t.Fatalf("shape %d: normalize failed: %v", shape, err)
		}
		if len(rows) != 0 {
			t.Fatalf("shape %d: expected zero rows, got %d", shape, len(rows))
		}
	}
}

func TestNormalizeRejectsUndecodablePayload(t *testing.T) {
	if _, _, err := Normalize(ItemList, []byte(`not json`)); err == nil {
		t.Fatal("expected error for undecodable payload")
	}
}
