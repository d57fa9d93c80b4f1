package domain

import (
	"context"
	"time"
)

// OrderSource tells which collection an order was read from.
type OrderSource string

const (
	SourceLocal   OrderSource = "local"
	SourceShopify OrderSource = "shopify"
)

// UpstreamIDPrefix marks ids of orders that only exist in the upstream store.
const UpstreamIDPrefix = "shopify-"

// --- Order Entities ---

type Order struct {
	ID        string      `json:"id"`
	Source    OrderSource `json:"source"`
	ShopifyID string      `json:"shopifyId,omitempty"`
	OrderID   string      `json:"orderId"` // business order number
	OrderDate *time.Time  `json:"orderDate,omitempty"`
	AWB       string      `json:"awb"`

	// Customer
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerAddress string `json:"customerAddress"`
	City            string `json:"city"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`

	Products []Product `json:"products"`

	// Package (kg / cm)
	DeadWeight       *float64 `json:"deadWeight,omitempty"`
	Length           *float64 `json:"length,omitempty"`
	Breadth          *float64 `json:"breadth,omitempty"`
	Height           *float64 `json:"height,omitempty"`
	VolumetricWeight *float64 `json:"volumetricWeight,omitempty"`

	// Billing & Tax
	Amount           *float64    `json:"amount,omitempty"`
	PaymentMode      PaymentMode `json:"paymentMode"`
	CGST             *float64    `json:"cgst,omitempty"`
	SGST             *float64    `json:"sgst,omitempty"`
	IGST             *float64    `json:"igst,omitempty"`
	HSNCode          string      `json:"hsnCode"`
	GSTINNumber      string      `json:"gstinNumber"`
	InvoiceReference string      `json:"invoiceReference"`
	Category         string      `json:"category"`
	UnitPrice        *float64    `json:"unitPrice,omitempty"`

	// Pickup
	VendorName    string `json:"vendorName"`
	PickupAddress string `json:"pickupAddress"`
	PickupCity    string `json:"pickupCity"`
	PickupState   string `json:"pickupState"`
	PickupPincode string `json:"pickupPincode"`

	ReturnLabel1 string `json:"returnLabel1"`
	ReturnLabel2 string `json:"returnLabel2"`
	ServiceTier  string `json:"serviceTier"`
	Tag          string `json:"tag"`

	Status         OrderStatus    `json:"status"`
	ReturnTracking ReturnTracking `json:"returnTracking"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type Product struct {
	ProductName   string      `json:"productName"`
	Quantity      int         `json:"quantity"`
	UploadedImage string      `json:"uploadedImage,omitempty"` // preview URL
	SmartCheck    *SmartCheck `json:"smartCheck,omitempty"`
}

const SmartCheckImageVerification = "IMAGE_VERIFICATION"

// SmartCheck is the carrier's image-verification block for a returned product.
type SmartCheck struct {
	Checks []SmartCheckItem `json:"checks"`
}

type SmartCheckItem struct {
	Type   string   `json:"type"`
	Images []string `json:"images"`
}

func NewImageSmartCheck(url string) *SmartCheck {
	return &SmartCheck{
		Checks: []SmartCheckItem{{Type: SmartCheckImageVerification, Images: []string{url}}},
	}
}

type ReturnTracking struct {
	CurrentStatus   string          `json:"currentStatus"`
	History         []TrackingEvent `json:"history"`
	EkartTrackingID string          `json:"ekartTrackingId"`
	LastUpdated     *time.Time      `json:"lastUpdated,omitempty"`
}

type TrackingEvent struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

const TrackingStatusReturnInitiated = "Return Initiated"

// SortTime is the order date, falling back to the creation time.
func (o *Order) SortTime() time.Time {
	if o.OrderDate != nil && !o.OrderDate.IsZero() {
		return *o.OrderDate
	}
	return o.CreatedAt
}

func (o *Order) IsUpstreamOnly() bool {
	return o.Source == SourceShopify
}

// MarkReturnRequested applies a successful carrier return to the order.
func (o *Order) MarkReturnRequested(trackingID string, now time.Time) {
	o.Status = OrderStatusReturnRequested
	o.ReturnTracking = ReturnTracking{
		CurrentStatus: TrackingStatusReturnInitiated,
		History: []TrackingEvent{{
			Status:      TrackingStatusReturnInitiated,
			Timestamp:   now,
			Description: "Return request submitted to carrier",
		}},
		EkartTrackingID: trackingID,
		LastUpdated:     &now,
	}
}

// Copy returns a deep copy; products and tracking history are not shared.
func (o *Order) Copy() *Order {
	c := *o
	if o.OrderDate != nil {
		d := *o.OrderDate
		c.OrderDate = &d
	}
	c.Products = make([]Product, len(o.Products))
	for i, p := range o.Products {
		c.Products[i] = p
		if p.SmartCheck != nil {
			sc := &SmartCheck{Checks: make([]SmartCheckItem, len(p.SmartCheck.Checks))}
			for j, chk := range p.SmartCheck.Checks {
				sc.Checks[j] = SmartCheckItem{Type: chk.Type, Images: append([]string(nil), chk.Images...)}
			}
			c.Products[i].SmartCheck = sc
		}
	}
	c.ReturnTracking.History = append([]TrackingEvent(nil), o.ReturnTracking.History...)
	if o.ReturnTracking.LastUpdated != nil {
		t := *o.ReturnTracking.LastUpdated
		c.ReturnTracking.LastUpdated = &t
	}
	return &c
}

// CloneAs is the cloneOrder action: a fresh local order with "-CLONE" suffixed
// to the business number.
func (o *Order) CloneAs(newID string) *Order {
	c := o.Copy()
	c.ID = newID
	c.Source = SourceLocal
	c.OrderID = o.OrderID + "-CLONE"
	c.ShopifyID = ""
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
	return c
}

// --- Interfaces ---

type OrderRepository interface {
	List(ctx context.Context) ([]*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	ExistingOrderIDs(ctx context.Context, orderIDs []string) ([]string, error)
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id string) error
}

// UpstreamClient reads orders from the storefront platform.
type UpstreamClient interface {
	FetchOrders(ctx context.Context) ([]*Order, error)
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
