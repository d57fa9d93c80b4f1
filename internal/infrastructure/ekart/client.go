package ekart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/infrastructure/metrics"
	"orderdesk-backend/pkg/logger"

	"github.com/goccy/go-json"
)

// maxResponseBytes caps how much of a carrier response is read.
const maxResponseBytes = 1 << 20

// Client talks to the Ekart reverse-logistics integration. Each call is made
// exactly once; failures are returned to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type returnResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	TrackingID string `json:"trackingId"`
}

type trackingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		CurrentStatus string                 `json:"currentStatus"`
		History       []domain.TrackingEvent `json:"history"`
		TrackingID    string                 `json:"trackingId"`
		LastUpdated   *time.Time             `json:"lastUpdated"`
	} `json:"data"`
}

// CreateReturn submits a reverse-shipment request.
func (c *Client) CreateReturn(ctx context.Context, payload *domain.ReturnPayload) (_ *domain.CarrierReturn, err error) {
	start := time.Now()
	defer func() { metrics.ObserveCarrier("create_return", start, err) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal return payload: %w", err)
	}

	var resp returnResponse
	if err := c.do(ctx, http.MethodPost, "/api/ekart/return", body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(resp.Message)
	}

	logger.WithContext(ctx).Info().
		Str("order_id", payload.OrderID).
		Str("tracking_id", resp.TrackingID).
		Int("products", len(payload.Products)).
		Msg("[Ekart] Return created")

	return &domain.CarrierReturn{TrackingID: resp.TrackingID, Message: resp.Message}, nil
}

// FetchTracking returns the current reverse-shipment record.
func (c *Client) FetchTracking(ctx context.Context, trackingID string) (_ *domain.ReturnTracking, err error) {
	start := time.Now()
	defer func() { metrics.ObserveCarrier("fetch_tracking", start, err) }()

	var resp trackingResponse
	if err := c.do(ctx, http.MethodGet, "/api/ekart/track/"+url.PathEscape(trackingID), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, rejected(resp.Message)
	}

	tracking := &domain.ReturnTracking{
		CurrentStatus:   resp.Data.CurrentStatus,
		History:         resp.Data.History,
		EkartTrackingID: resp.Data.TrackingID,
		LastUpdated:     resp.Data.LastUpdated,
	}
	if tracking.EkartTrackingID == "" {
		tracking.EkartTrackingID = trackingID
	}
	if tracking.History == nil {
		tracking.History = []domain.TrackingEvent{}
	}
	return tracking, nil
}

func rejected(message string) error {
	if message == "" {
		message = "no reason given"
	}
	return fmt.Errorf("%w: %s", domain.ErrCarrierRejected, message)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build carrier request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: carrier request failed: %w", domain.ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read carrier response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &msg) == nil && msg.Message != "" {
			return fmt.Errorf("%w: carrier error (status %d): %s", domain.ErrCarrierUnavailable, resp.StatusCode, msg.Message)
		}
		return fmt.Errorf("%w: carrier error (status %d): %s", domain.ErrCarrierUnavailable, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode carrier response: %w", err)
	}
	return nil
}
