package shopcarts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Shape selects which payload layout Normalize expects. The service returns
// three distinct layouts for cart-level reads plus one for item searches.
type Shape int

const (
	// SingleCartNested is the retrieve-cart layout: customer_id plus a
	// shopcarts[] array whose entries each wrap an items[] array.
	SingleCartNested Shape = iota
	// SingleCartFlat is the post-update layout: customer_id plus a flat
	// items[] array.
	SingleCartFlat
	// CartList is the search-carts layout: a shopcart_lists[] array of
	// cart references with no item detail.
	CartList
	// ItemList is the search-items layout: customer_id plus items[].
	ItemList
)

// Column schemas for the two result tables. These are the canonical labels;
// the interactive console and the one-shot subcommands share them.
var (
	CartSchema = []string{"Customer ID", "Shopcart #", "Item ID", "Quantity"}
	ItemSchema = []string{"Customer ID", "Item ID", "Quantity"}
)

// shapeSpec is one row of the shape mapping table: where the row array
// lives and which field names may carry the item id and quantity. Adding an
// endpoint means adding one entry here, not another ad hoc branch.
type shapeSpec struct {
	listKey string
	nested  bool
	idKeys  []string
	qtyKeys []string
}

var shapeTable = map[Shape]shapeSpec{
	SingleCartNested: {listKey: "shopcarts", nested: true, idKeys: []string{"item_id", "product_id"}, qtyKeys: []string{"quantity", "quantities"}},
	SingleCartFlat:   {listKey: "items", idKeys: []string{"product_id", "item_id"}, qtyKeys: []string{"quantities", "quantity"}},
	CartList:         {listKey: "shopcart_lists"},
	ItemList:         {listKey: "items", idKeys: []string{"item_id", "product_id"}, qtyKeys: []string{"quantity", "quantities"}},
}

// Normalize projects a raw response payload into render rows. For ItemList
// it also returns the first item as a record for form pre-fill (nil when the
// result set is empty). An absent or mistyped row array yields zero rows and
// no error; only undecodable JSON is an error.
func Normalize(shape Shape, payload []byte) ([]RenderRow, *ItemRecord, error) {
	spec, ok := shapeTable[shape]
	if !ok {
		return nil, nil, fmt.Errorf("unknown response shape %d", shape)
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode response: %w", err)
	}

	customerID := cellValue(doc["customer_id"])
	rows := []RenderRow{}

	switch shape {
	case CartList:
		for _, entry := range asList(doc[spec.listKey]) {
			ref := asMap(entry)
			// The list view shows one row per cart and no item detail.
			rows = append(rows, RenderRow{cellValue(ref["customer_id"]), "1", "", ""})
		}
		return rows, nil, nil

	case SingleCartNested:
		for i, entry := range asList(doc[spec.listKey]) {
			cart := asMap(entry)
			cartIndex := strconv.Itoa(i + 1)
			for _, raw := range asList(cart["items"]) {
				item := asMap(raw)
				rows = append(rows, RenderRow{
					customerID,
					cartIndex,
					pick(item, spec.idKeys),
					pick(item, spec.qtyKeys),
				})
			}
		}
		return rows, nil, nil

	case SingleCartFlat:
		for _, raw := range asList(doc[spec.listKey]) {
			item := asMap(raw)
			rows = append(rows, RenderRow{
				customerID,
				"1",
				pick(item, spec.idKeys),
				pick(item, spec.qtyKeys),
			})
		}
		return rows, nil, nil

	case ItemList:
		var first *ItemRecord
		for _, raw := range asList(doc[spec.listKey]) {
			item := asMap(raw)
			id := pick(item, spec.idKeys)
			qty := pick(item, spec.qtyKeys)
			rows = append(rows, RenderRow{customerID, id, qty})
			if first == nil {
				cid, _ := strconv.Atoi(customerID)
				first = &ItemRecord{
					CustomerID: cid,
					ProductID:  FlexString(id),
					Quantities: FlexString(qty),
				}
			}
		}
		return rows, first, nil
	}

	return rows, nil, nil
}

// pick returns the first candidate field present in the item, as a display
// string. Field-name reconciliation happens here and nowhere else.
func pick(item map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := item[key]; ok && v != nil {
			return cellValue(v)
		}
	}
	return ""
}

// cellValue renders a decoded JSON scalar for display.
func cellValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asList(v any) []any {
	list, _ := v.([]any)
	return list
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
