package shopify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/infrastructure/metrics"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/utils"

	"github.com/goccy/go-json"
)

const maxResponseBytes = 16 << 20

// maxPages bounds the cursor walk in case the store keeps returning a next link.
const maxPages = 200

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// Client reads orders from the Shopify Admin REST API.
type Client struct {
	storeURL    string
	accessToken string
	apiVersion  string
	pageLimit   int
	httpClient  *http.Client
}

func NewClient(storeURL, accessToken, apiVersion string, pageLimit int, timeout time.Duration) *Client {
	storeURL = strings.TrimSuffix(storeURL, "/")
	if !strings.HasPrefix(storeURL, "http://") && !strings.HasPrefix(storeURL, "https://") {
		storeURL = "https://" + storeURL
	}
	if pageLimit <= 0 || pageLimit > 250 {
		pageLimit = 250
	}
	return &Client{
		storeURL:    storeURL,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		pageLimit:   pageLimit,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type ordersResponse struct {
	Orders []shopifyOrder `json:"orders"`
}

type shopifyOrder struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	CancelledAt     *time.Time       `json:"cancelled_at"`
	TotalPrice      string           `json:"total_price"`
	FinancialStatus string           `json:"financial_status"`
	Tags            string           `json:"tags"`
	Customer        *shopifyCustomer `json:"customer"`
	ShippingAddress *shopifyAddress  `json:"shipping_address"`
	LineItems       []shopifyItem    `json:"line_items"`
}

type shopifyCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type shopifyAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone"`
}

type shopifyItem struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// FetchOrders walks every page of the store's orders and maps them to
// upstream-only domain orders.
func (c *Client) FetchOrders(ctx context.Context) ([]*domain.Order, error) {
	log := logger.WithContext(ctx)
	next := fmt.Sprintf("%s/admin/api/%s/orders.json?status=any&limit=%d", c.storeURL, c.apiVersion, c.pageLimit)

	var orders []*domain.Order
	for page := 0; next != "" && page < maxPages; page++ {
		batch, link, err := c.fetchPage(ctx, next)
		if err != nil {
			metrics.CountError("shopify_fetch")
			return nil, err
		}
		for i := range batch {
			orders = append(orders, toDomain(&batch[i]))
		}
		next = link
	}
	if next != "" {
		log.Warn().Int("pages", maxPages).Int("count", len(orders)).Msg("[Shopify] Page limit reached, order list truncated")
	}

	metrics.UpstreamOrdersFetched.Set(float64(len(orders)))
	log.Info().Int("count", len(orders)).Msg("[Shopify] Orders fetched")
	return orders, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]shopifyOrder, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build shopify request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("shopify request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read shopify response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("shopify API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var body ordersResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, "", fmt.Errorf("failed to decode shopify orders: %w", err)
	}
	return body.Orders, nextLink(resp.Header.Get("Link")), nil
}

func nextLink(header string) string {
	m := nextLinkPattern.FindStringSubmatch(header)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func toDomain(s *shopifyOrder) *domain.Order {
	created := s.CreatedAt.UTC()
	o := &domain.Order{
		ID:            domain.UpstreamIDPrefix + strconv.FormatInt(s.ID, 10),
		Source:        domain.SourceShopify,
		ShopifyID:     strconv.FormatInt(s.ID, 10),
		OrderID:       utils.NormalizeOrderNumber(s.Name),
		OrderDate:     &created,
		CustomerEmail: s.Email,
		CustomerPhone: s.Phone,
		PaymentMode:   domain.PaymentModeCOD,
		Tag:           s.Tags,
		Status:        domain.OrderStatusNew,
		Products:      make([]domain.Product, 0, len(s.LineItems)),
		ReturnTracking: domain.ReturnTracking{
			History: []domain.TrackingEvent{},
		},
		CreatedAt: created,
		UpdatedAt: s.UpdatedAt.UTC(),
	}

	if strings.EqualFold(s.FinancialStatus, "paid") {
		o.PaymentMode = domain.PaymentModePrepaid
	}
	if s.CancelledAt != nil {
		o.Status = domain.OrderStatusCancelled
	}
	if amount, err := strconv.ParseFloat(s.TotalPrice, 64); err == nil {
		o.Amount = &amount
	}

	if s.Customer != nil {
		o.CustomerName = strings.TrimSpace(s.Customer.FirstName + " " + s.Customer.LastName)
		if o.CustomerEmail == "" {
			o.CustomerEmail = s.Customer.Email
		}
		if o.CustomerPhone == "" {
			o.CustomerPhone = s.Customer.Phone
		}
	}
	if a := s.ShippingAddress; a != nil {
		if o.CustomerName == "" {
			o.CustomerName = a.Name
		}
		if o.CustomerPhone == "" {
			o.CustomerPhone = a.Phone
		}
		o.CustomerAddress = strings.TrimSpace(strings.Join([]string{a.Address1, a.Address2}, " "))
		o.City = a.City
		o.State = a.Province
		o.Pincode = a.Zip
	}

	for _, item := range s.LineItems {
		o.Products = append(o.Products, domain.Product{ProductName: item.Title, Quantity: item.Quantity})
	}
	if len(s.LineItems) == 1 {
		if price, err := strconv.ParseFloat(s.LineItems[0].Price, 64); err == nil {
			o.UnitPrice = &price
		}
	}
	return o
}

// Disabled stands in when no store is configured: the upstream is empty.
type Disabled struct{}

func (Disabled) FetchOrders(ctx context.Context) ([]*domain.Order, error) {
	return []*domain.Order{}, nil
}
