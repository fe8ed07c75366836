package console

import (
	"strings"

	"cartconsole/internal/shopcarts"
)

// extractItemRows reads the editable rows in display order and emits one
// record per row where both the item id and the quantity are filled in.
// Rows missing either value are skipped without complaint so the operator
// can keep scratch rows around. Every record carries the shared customer id
// from the cart form.
func extractItemRows(customerID int, rows []itemRow) []shopcarts.ItemRecord {
	var records []shopcarts.ItemRecord
	for _, row := range rows {
		id := strings.TrimSpace(row.id.Value())
		qty := strings.TrimSpace(row.qty.Value())
		if id == "" || qty == "" {
			continue
		}
		records = append(records, shopcarts.ItemRecord{
			CustomerID: customerID,
			ProductID:  shopcarts.FlexString(id),
			Quantities: shopcarts.FlexString(qty),
		})
	}
	return records
}
