package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultVendorName is sent to the carrier when the order has no vendor.
const DefaultVendorName = "Ekart"

// ReturnPayload is the body of a carrier reverse-shipment request.
type ReturnPayload struct {
	ShopifyID       string      `json:"shopifyId"`
	OrderID         string      `json:"orderId"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	CustomerEmail   string      `json:"customerEmail"`
	CustomerAddress string      `json:"customerAddress"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	Pincode         string      `json:"pincode"`
	Products        []Product   `json:"products"`
	DeadWeight      *float64    `json:"deadWeight"`
	Length          *float64    `json:"length"`
	Breadth         *float64    `json:"breadth"`
	Height          *float64    `json:"height"`
	VolWeight       *float64    `json:"volumetricWeight"`
	Amount          *float64    `json:"amount"`
	PaymentMode     PaymentMode `json:"paymentMode"`
	VendorName      string      `json:"vendorName"`
	PickupAddress   string      `json:"pickupAddress"`
	PickupCity      string      `json:"pickupCity"`
	PickupState     string      `json:"pickupState"`
	PickupPincode   string      `json:"pickupPincode"`
	GSTIN           string      `json:"gstin"`
	HSN             string      `json:"hsn"`
	InvoiceID       string      `json:"invoiceId"`
}

// BuildReturnPayload assembles the carrier request for the selected product
// rows of an order. Products keep any smart-check block attached earlier.
func BuildReturnPayload(o *Order, indices []int) (*ReturnPayload, error) {
	indices = NormalizeIndices(indices)
	if len(indices) == 0 {
		return nil, ErrNoProductsSelected
	}

	products := make([]Product, 0, len(indices))
	for _, i := range indices {
		if i >= len(o.Products) {
			return nil, fmt.Errorf("%w: %d (order %s has %d products)", ErrProductIndex, i, o.OrderID, len(o.Products))
		}
		products = append(products, o.Products[i])
	}

	vendor := strings.TrimSpace(o.VendorName)
	if vendor == "" {
		vendor = DefaultVendorName
	}

	return &ReturnPayload{
		ShopifyID:       o.ShopifyID,
		OrderID:         o.OrderID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		City:            o.City,
		State:           o.State,
		Pincode:         o.Pincode,
		Products:        products,
		DeadWeight:      o.DeadWeight,
		Length:          o.Length,
		Breadth:         o.Breadth,
		Height:          o.Height,
		VolWeight:       o.VolumetricWeight,
		Amount:          o.Amount,
		PaymentMode:     o.PaymentMode,
		VendorName:      vendor,
		PickupAddress:   o.PickupAddress,
		PickupCity:      o.PickupCity,
		PickupState:     o.PickupState,
		PickupPincode:   o.PickupPincode,
		GSTIN:           o.GSTINNumber,
		HSN:             o.HSNCode,
		InvoiceID:       o.InvoiceReference,
	}, nil
}

// CarrierReturn is the carrier's answer to an accepted return request.
type CarrierReturn struct {
	TrackingID string `json:"trackingId"`
	Message    string `json:"message"`
}

// CarrierClient is the reverse-logistics carrier integration.
type CarrierClient interface {
	CreateReturn(ctx context.Context, payload *ReturnPayload) (*CarrierReturn, error)
	FetchTracking(ctx context.Context, trackingID string) (*ReturnTracking, error)
}

// ReturnResult is the outcome for one order: Err is nil on success.
type ReturnResult struct {
	OrderID    string
	TrackingID string
	Err        error
}

func (r ReturnResult) OK() bool { return r.Err == nil }

type ReturnResultView struct {
	OrderID    string `json:"orderId"`
	Success    bool   `json:"success"`
	TrackingID string `json:"trackingId,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BulkSummary aggregates a bulk return.
type BulkSummary struct {
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Results   []ReturnResultView `json:"results"`
}

// SummarizeReturns folds per-order results into a summary, preserving order.
func SummarizeReturns(results []ReturnResult) BulkSummary {
	sum := BulkSummary{Results: make([]ReturnResultView, 0, len(results))}
	for _, r := range results {
		view := ReturnResultView{OrderID: r.OrderID, Success: r.OK(), TrackingID: r.TrackingID}
		if r.OK() {
			sum.Succeeded++
		} else {
			sum.Failed++
			view.Error = r.Err.Error()
		}
		sum.Results = append(sum.Results, view)
	}
	return sum
}

// ReturnEvent is published after a carrier accepted a return.
type ReturnEvent struct {
	OrderID     string    `json:"orderId"`
	StoreID     string    `json:"id"`
	TrackingID  string    `json:"trackingId"`
	Products    int       `json:"products"`
	RequestedBy string    `json:"requestedBy"`
	RequestedAt time.Time `json:"requestedAt"`
}

type EventPublisher interface {
	PublishReturnRequested(ctx context.Context, event ReturnEvent) error
	Close() error
}

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	Put(ctx context.Context, folder string, data []byte, contentType string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
