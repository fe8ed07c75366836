// Package shopcarts is the client-side core of the cart console: entity
// types, the REST transport, and the response normalizer that projects the
// service's heterogeneous payload shapes into display-ready rows.
package shopcarts

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ShopcartRef identifies one cart. The service keys carts by customer, so
// the customer id is the cart id.
type ShopcartRef struct {
	CustomerID int `json:"customer_id"`
}

// FlexString is a display value that decodes from either a JSON string or a
// JSON number. The service is inconsistent about which one it sends for item
// ids and quantities, and the console only ever displays them.
type FlexString string

// UnmarshalJSON accepts a string, a number, or null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value is neither string nor number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// ItemRecord is one line item scoped to a cart. ProductID and Quantities
// keep the operator's raw input (or the server's rendering of it); only the
// customer id is guaranteed numeric. The write-path field name is
// "quantities"; some read paths say "quantity" instead, and the normalizer
// reconciles that before an ItemRecord is ever built from a search result.
type ItemRecord struct {
	CustomerID int        `json:"customer_id"`
	ProductID  FlexString `json:"product_id"`
	Quantities FlexString `json:"quantities"`
}

// RenderRow is the fixed-arity tuple of display strings consumed by the
// table renderer. Cart rows have four cells, item rows three; the schema
// passed alongside decides the arity.
type RenderRow []string

// ParseCustomerID coerces the cart form's customer id field. A value that is
// not a whole number is a client-visible failure, never a NaN on the wire.
func ParseCustomerID(raw string) (int, error) {
	return parseField("customer id", raw)
}

// ParseItemID coerces an item id field the same way.
func ParseItemID(raw string) (int, error) {
	return parseField("item id", raw)
}

// ParseQuantity coerces the item form's quantity field.
func ParseQuantity(raw string) (int, error) {
	return parseField("quantity", raw)
}

func parseField(label, raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%s is required", label)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", label)
	}
	return n, nil
}
