package domain

import (
	"fmt"
	"strings"
)

// OrderStatus is the lifecycle state of an order. The set is closed: values
// outside OrderStatuses are rejected by ParseOrderStatus.
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "New"
	OrderStatusPending         OrderStatus = "PENDING"
	OrderStatusInTransit       OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered       OrderStatus = "DELIVERED"
	OrderStatusReturned        OrderStatus = "RETURNED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusReturnRequested OrderStatus = "RETURN_REQUESTED"
)

// List Exports for API
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusPending,
	OrderStatusInTransit,
	OrderStatusDelivered,
	OrderStatusReturned,
	OrderStatusCancelled,
	OrderStatusReturnRequested,
}

// ParseOrderStatus accepts the canonical spelling or any case variant of it.
func ParseOrderStatus(s string) (OrderStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range OrderStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Label is the operator-facing name of the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusNew:
		return "New"
	case OrderStatusPending:
		return "Pending"
	case OrderStatusInTransit:
		return "In Transit"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusReturned:
		return "Returned"
	case OrderStatusCancelled:
		return "Cancelled"
	case OrderStatusReturnRequested:
		return "Return Requested"
	}
	return string(s)
}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// StatusTab is one of the dashboard filter tabs. Most tabs track the carrier's
// reverse-shipment stage rather than the order status.
type StatusTab string

const (
	TabNew                StatusTab = "New"
	TabInfoReceived       StatusTab = "InfoReceived"
	TabOutForPickup       StatusTab = "OutForPickup"
	TabPickUpFromSeller   StatusTab = "PickUpFromSeller"
	TabInTransit          StatusTab = "InTransit"
	TabReceivedAtFacility StatusTab = "Received at Facility"
	TabOutForDelivery     StatusTab = "Out for Delivery"
	TabAttemptFail        StatusTab = "AttemptFail"
	TabDelivered          StatusTab = "Delivered"
	TabAvailableForPickup StatusTab = "Available for Pickup"
	TabException          StatusTab = "Exception"
	TabExpired            StatusTab = "Expired"
)

var StatusTabs = []StatusTab{
	TabNew,
	TabInfoReceived,
	TabOutForPickup,
	TabPickUpFromSeller,
	TabInTransit,
	TabReceivedAtFacility,
	TabOutForDelivery,
	TabAttemptFail,
	TabDelivered,
	TabAvailableForPickup,
	TabException,
	TabExpired,
}

// ParseStatusTab returns "" with no error for an empty input (no filter).
func ParseStatusTab(s string) (StatusTab, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, t := range StatusTabs {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tab %q", ErrInvalidInput, s)
}

// Matches reports whether the order belongs under the tab.
func (t StatusTab) Matches(o *Order) bool {
	stage := strings.TrimSpace(o.ReturnTracking.CurrentStatus)
	onStage := strings.EqualFold(stage, string(t))

	switch t {
	case "":
		return true
	case TabNew:
		return o.Status == OrderStatusNew
	case TabInTransit:
		return o.Status == OrderStatusInTransit || onStage
	case TabDelivered:
		return o.Status == OrderStatusDelivered || onStage
	case TabInfoReceived, TabOutForPickup, TabPickUpFromSeller, TabReceivedAtFacility,
		TabOutForDelivery, TabAttemptFail, TabAvailableForPickup, TabException, TabExpired:
		return onStage
	}
	return false
}

// PaymentMode is how the customer paid. Empty means unknown.
type PaymentMode string

const (
	PaymentModeCOD     PaymentMode = "COD"
	PaymentModePrepaid PaymentMode = "Prepaid"
)

var PaymentModes = []PaymentMode{PaymentModeCOD, PaymentModePrepaid}
