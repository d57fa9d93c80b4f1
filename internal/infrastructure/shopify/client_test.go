package shopify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageOne = `{"orders":[{
	"id": 5501,
	"name": "#1042",
	"email": "asha@example.com",
	"created_at": "2024-03-05T09:30:00+05:30",
	"updated_at": "2024-03-05T10:00:00+05:30",
	"total_price": "1499.00",
	"financial_status": "paid",
	"customer": {"first_name": "Asha", "last_name": "Rao", "phone": "9876543210"},
	"shipping_address": {"address1": "12 MG Road", "address2": "Flat 4", "city": "Pune", "province": "Maharashtra", "zip": "411001"},
	"line_items": [{"title": "Kurta", "quantity": 2, "price": "749.50"}]
}]}`

const pageTwo = `{"orders":[{
	"id": 5502,
	"name": "#1043",
	"created_at": "2024-03-06T09:30:00Z",
	"updated_at": "2024-03-06T09:30:00Z",
	"total_price": "not-a-number",
	"financial_status": "pending",
	"cancelled_at": "2024-03-07T00:00:00Z",
	"line_items": []
}]}`

func TestFetchOrdersFollowsPages(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/2024-01/orders.json", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get("X-Shopify-Access-Token"))
		if r.URL.Query().Get("page_info") == "" {
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-01/orders.json?limit=50&page_info=abc>; rel="next"`, srv.URL))
			w.Write([]byte(pageOne))
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-01/orders.json?limit=50&page_info=xyz>; rel="previous"`, srv.URL))
		w.Write([]byte(pageTwo))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok", "2024-01", 50, time.Second)
	orders, err := c.FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "shopify-5501", first.ID)
	assert.Equal(t, "5501", first.ShopifyID)
	assert.Equal(t, "1042", first.OrderID)
	assert.Equal(t, domain.SourceShopify, first.Source)
	assert.True(t, first.IsUpstreamOnly())
	assert.Equal(t, "Asha Rao", first.CustomerName)
	assert.Equal(t, "9876543210", first.CustomerPhone)
	assert.Equal(t, "12 MG Road Flat 4", first.CustomerAddress)
	assert.Equal(t, "411001", first.Pincode)
	assert.Equal(t, domain.PaymentModePrepaid, first.PaymentMode)
	assert.Equal(t, domain.OrderStatusNew, first.Status)
	require.NotNil(t, first.Amount)
	assert.InDelta(t, 1499.0, *first.Amount, 0.001)
	require.NotNil(t, first.UnitPrice)
	require.Len(t, first.Products, 1)
	assert.Equal(t, domain.Product{ProductName: "Kurta", Quantity: 2}, first.Products[0])
	require.NotNil(t, first.OrderDate)
	assert.Equal(t, time.UTC, first.OrderDate.Location())

	second := orders[1]
	assert.Equal(t, domain.OrderStatusCancelled, second.Status)
	assert.Equal(t, domain.PaymentModeCOD, second.PaymentMode)
	assert.Nil(t, second.Amount)
	assert.Empty(t, second.Products)
}

func TestFetchOrdersWarnsAtPageLimit(t *testing.T) {
	var srv *httptest.Server
	var requests atomic.Int32
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-01/orders.json?page_info=p%d>; rel="next"`, srv.URL, n))
		w.Write([]byte(`{"orders":[]}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := logger.NewContext(context.Background(), &l)

	orders, err := NewClient(srv.URL, "tok", "2024-01", 250, time.Second).FetchOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, int32(maxPages), requests.Load())
	assert.Contains(t, buf.String(), "Page limit reached")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestFetchOrdersError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad", "2024-01", 250, time.Second).FetchOrders(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestNewClientAddsScheme(t *testing.T) {
	c := NewClient("demo.myshopify.com/", "tok", "2024-01", 0, time.Second)
	assert.Equal(t, "https://demo.myshopify.com", c.storeURL)
	assert.Equal(t, 250, c.pageLimit)
}

func TestNextLink(t *testing.T) {
	h := `<https://a/orders.json?page_info=p1>; rel="previous", <https://a/orders.json?page_info=n1>; rel="next"`
	assert.Equal(t, "https://a/orders.json?page_info=n1", nextLink(h))
	assert.Equal(t, "", nextLink(""))
}

func TestDisabledReturnsEmpty(t *testing.T) {
	orders, err := Disabled{}.FetchOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
