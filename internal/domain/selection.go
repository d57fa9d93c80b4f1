package domain

import (
	"slices"
	"time"
)

// Selection is an operator's checkbox state on the order table: which orders
// are checked and which product rows are checked inside each order.
// Generation ties the selection to one version of the backing order list.
type Selection struct {
	Generation    int64            `json:"generation"`
	CheckedOrders []string         `json:"checkedOrders"`
	Products      map[string][]int `json:"products"`
}

func NewSelection(generation int64) *Selection {
	return &Selection{
		Generation:    generation,
		CheckedOrders: []string{},
		Products:      map[string][]int{},
	}
}

func (s *Selection) IsChecked(orderID string) bool {
	return slices.Contains(s.CheckedOrders, orderID)
}

func (s *Selection) SetChecked(orderID string, checked bool) {
	idx := slices.Index(s.CheckedOrders, orderID)
	switch {
	case checked && idx < 0:
		s.CheckedOrders = append(s.CheckedOrders, orderID)
	case !checked && idx >= 0:
		s.CheckedOrders = slices.Delete(s.CheckedOrders, idx, idx+1)
	}
}

// SetProducts replaces the product rows checked for an order. Negative
// indices are dropped and duplicates collapsed.
func (s *Selection) SetProducts(orderID string, indices []int) {
	clean := NormalizeIndices(indices)
	if len(clean) == 0 {
		delete(s.Products, orderID)
		return
	}
	if s.Products == nil {
		s.Products = map[string][]int{}
	}
	s.Products[orderID] = clean
}

func (s *Selection) ToggleProduct(orderID string, index int, checked bool) {
	current := s.ProductIndices(orderID)
	pos := slices.Index(current, index)
	switch {
	case checked && pos < 0:
		current = append(current, index)
	case !checked && pos >= 0:
		current = slices.Delete(current, pos, pos+1)
	}
	s.SetProducts(orderID, current)
}

func (s *Selection) ProductIndices(orderID string) []int {
	return slices.Clone(s.Products[orderID])
}

// ClearOrder drops every selection made for one order.
func (s *Selection) ClearOrder(orderID string) {
	delete(s.Products, orderID)
	s.SetChecked(orderID, false)
}

func NormalizeIndices(indices []int) []int {
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 {
			out = append(out, i)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// InFlightKind distinguishes what return work is pending for a session.
type InFlightKind string

const (
	InFlightNone   InFlightKind = ""
	InFlightSingle InFlightKind = "single"
	InFlightBulk   InFlightKind = "bulk"
)

type InFlight struct {
	Kind      InFlightKind `json:"kind"`
	OrderID   string       `json:"orderId,omitempty"`
	StartedAt time.Time    `json:"startedAt"`
}

// SelectionView is what the selection endpoints return.
type SelectionView struct {
	Selection *Selection `json:"selection"`
	InFlight  InFlight   `json:"inFlight"`
}
