package shopcarts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := NewClient(srv.URL, 5*time.Second)
	t.Cleanup(func() {
		c.CloseIdleConnections()
		srv.Close()
	})
	return c
}

func TestCreateCartRequest(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"customer_id":9}`))
	})

	ref, err := c.CreateCart(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 9, ref.CustomerID)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/shopcarts", gotPath)
	// A new cart is a single placeholder line.
	assert.Equal(t, float64(9), gotBody["customer_id"])
	assert.Equal(t, float64(-1), gotBody["product_id"])
	assert.Equal(t, float64(1), gotBody["quantities"])
}

func TestUpdateCartSendsExtractedRows(t *testing.T) {
	var gotBody map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/shopcarts/4", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"customer_id":4,"items":[]}`))
	})

	items := []ItemRecord{{CustomerID: 4, ProductID: "7", Quantities: "2"}}
	_, err := c.UpdateCart(context.Background(), 4, items)
	require.NoError(t, err)

	sent, ok := gotBody["items"].([]any)
	require.True(t, ok, "items missing from body: %v", gotBody)
	require.Len(t, sent, 1)
	first := sent[0].(map[string]any)
	// Row values travel as the operator typed them.
	assert.Equal(t, "7", first["product_id"])
	assert.Equal(t, "2", first["quantities"])
}

func TestUpdateCartNilItemsSendsEmptyArray(t *testing.T) {
	var raw map[string]json.RawMessage
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"customer_id":4,"items":[]}`))
	})

	_, err := c.UpdateCart(context.Background(), 4, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw["items"]))
}

func TestItemEndpointsUseItemPaths(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"customer_id":3,"product_id":5,"quantities":2}`))
	})

	rec, err := c.UpdateItem(context.Background(), 3, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/shopcarts/3/items/5", gotPath)
	assert.Equal(t, FlexString("5"), rec.ProductID)
	assert.Equal(t, FlexString("2"), rec.Quantities)

	_, err = c.RetrieveItem(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/shopcarts/3/items/5", gotPath)

	err = c.DeleteItem(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestSearchItemsQuantityFilter(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"customer_id":5,"items":[]}`))
	})

	_, err := c.SearchItems(context.Background(), 5, "")
	require.NoError(t, err)
	assert.Equal(t, "", gotQuery, "empty filter must add no query parameter")

	_, err = c.SearchItems(context.Background(), 5, "3")
	require.NoError(t, err)
	assert.Equal(t, "quantity=3", gotQuery)
}

func TestServerErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Shopcart with id 5 was not found"}`))
	})

	_, err := c.RetrieveCart(context.Background(), 5)
	require.Error(t, err)
	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Equal(t, "Shopcart with id 5 was not found", serr.Message)
	assert.Equal(t, "Shopcart with id 5 was not found", FailureMessage(err))
}

func TestServerErrorWithoutBodyFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.DeleteCart(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, MsgServerError, FailureMessage(err))
}

func TestTransportFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(srv.URL, time.Second)
	srv.Close()

	_, err := c.SearchCarts(context.Background())
	require.Error(t, err)
	assert.Equal(t, MsgServerError, FailureMessage(err))
	c.CloseIdleConnections()
}
