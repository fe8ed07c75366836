package shopcarts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"cartconsole/internal/logging"
)

// ServerError is a structured rejection from the shopcarts service: a non-2xx
// response whose body carried a message field. Message may be empty when the
// body was absent or undecodable; FailureMessage supplies the fallback then.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client is the REST transport for the shopcarts service. It holds no state
// beyond connection configuration; every call is an independent
// request/response cycle.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a transport for the service at baseURL. A zero timeout
// means the client imposes none and relies on the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string { return c.baseURL }

// CloseIdleConnections releases kept-alive connections.
func (c *Client) CloseIdleConnections() { c.http.CloseIdleConnections() }

// errorBody is the service's rejection payload.
type errorBody struct {
	Message string `json:"message"`
}

// do runs one request. A non-nil body is sent as JSON; a non-nil out has the
// success payload decoded into it. Non-2xx responses come back as a
// *ServerError carrying whatever message the body held.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	reqID := uuid.NewString()[:8]
	timer := logging.StartTimer(logging.CategoryAPI, fmt.Sprintf("[%s] %s %s", reqID, method, path))
	resp, err := c.http.Do(req)
	timer.Stop()
	if err != nil {
		logging.APIError("[%s] %s %s: %v", reqID, method, path, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &ServerError{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			serr.Message = eb.Message
		}
		logging.API("[%s] %s %s -> %d %q", reqID, method, path, resp.StatusCode, serr.Message)
		return serr
	}

	logging.APIDebug("[%s] %s %s -> %d", reqID, method, path, resp.StatusCode)
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type createCartRequest struct {
	CustomerID int `json:"customer_id"`
	ProductID  int `json:"product_id"`
	Quantities int `json:"quantities"`
}

type updateCartRequest struct {
	CustomerID int          `json:"customer_id"`
	Items      []ItemRecord `json:"items"`
}

type itemRequest struct {
	CustomerID int `json:"customer_id"`
	ProductID  int `json:"product_id"`
	Quantities int `json:"quantities"`
}

// CreateCart creates an empty cart for the customer. The service models
// "empty" as a single placeholder line with product id -1.
func (c *Client) CreateCart(ctx context.Context, customerID int) (*ShopcartRef, error) {
	body := createCartRequest{CustomerID: customerID, ProductID: -1, Quantities: 1}
	var ref ShopcartRef
	if err := c.do(ctx, http.MethodPost, "/shopcarts", body, &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

// RetrieveCart fetches one customer's cart in the nested shopcarts[] layout.
// The raw payload goes to the normalizer untouched.
func (c *Client) RetrieveCart(ctx context.Context, customerID int) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/shopcarts/%d", customerID), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ClearCart removes every item from the cart. The response body is ignored;
// the console clears its own table on success.
func (c *Client) ClearCart(ctx context.Context, customerID int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/shopcarts/%d/clear", customerID), nil, nil)
}

// DeleteCart deletes the cart entirely.
func (c *Client) DeleteCart(ctx context.Context, customerID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/shopcarts/%d", customerID), nil, nil)
}

// SearchCarts lists every cart in the shopcart_lists[] layout.
func (c *Client) SearchCarts(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/shopcarts", nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// UpdateCart replaces the cart's items wholesale and returns the flat
// items[] layout.
func (c *Client) UpdateCart(ctx context.Context, customerID int, items []ItemRecord) (json.RawMessage, error) {
	body := updateCartRequest{CustomerID: customerID, Items: items}
	if body.Items == nil {
		body.Items = []ItemRecord{}
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/shopcarts/%d", customerID), body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CreateItem adds one item to the cart.
func (c *Client) CreateItem(ctx context.Context, customerID, productID, quantity int) (*ItemRecord, error) {
	body := itemRequest{CustomerID: customerID, ProductID: productID, Quantities: quantity}
	var rec ItemRecord
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/shopcarts/%d/items", customerID), body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateItem changes one item's quantity.
func (c *Client) UpdateItem(ctx context.Context, customerID, productID, quantity int) (*ItemRecord, error) {
	body := itemRequest{CustomerID: customerID, ProductID: productID, Quantities: quantity}
	var rec ItemRecord
	path := fmt.Sprintf("/shopcarts/%d/items/%d", customerID, productID)
	if err := c.do(ctx, http.MethodPut, path, body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RetrieveItem fetches one item.
func (c *Client) RetrieveItem(ctx context.Context, customerID, itemID int) (*ItemRecord, error) {
	var rec ItemRecord
	path := fmt.Sprintf("/shopcarts/%d/items/%d", customerID, itemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DeleteItem removes one item from the cart.
func (c *Client) DeleteItem(ctx context.Context, customerID, itemID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/shopcarts/%d/items/%d", customerID, itemID), nil, nil)
}

// SearchItems lists the cart's items in the items[] layout, optionally
// filtered by quantity. An empty quantity adds no query parameter at all.
func (c *Client) SearchItems(ctx context.Context, customerID int, quantity string) (json.RawMessage, error) {
	path := fmt.Sprintf("/shopcarts/%d/items", customerID)
	if q := strings.TrimSpace(quantity); q != "" {
		params := url.Values{}
		params.Set("quantity", q)
		path += "?" + params.Encode()
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
