package domain

import (
	"bytes"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

const DefaultPageSize = 100

// PageSizes are the only page sizes the table offers.
var PageSizes = []int{50, 100, 250, 500, 1000}

// OrderQuery is the list request coming from the dashboard.
type OrderQuery struct {
	Search   string
	Tab      StatusTab
	Page     int
	PageSize int
}

// Pagination
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

type OrderPage struct {
	Orders     []*Order   `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// NormalizePageSize maps anything outside PageSizes to DefaultPageSize.
func NormalizePageSize(size int) int {
	for _, s := range PageSizes {
		if s == size {
			return size
		}
	}
	return DefaultPageSize
}

// MergeOrders concatenates the collections in order and sorts the result by
// SortTime, newest first. Ties keep their merged order.
func MergeOrders(collections ...[]*Order) []*Order {
	n := 0
	for _, c := range collections {
		n += len(c)
	}
	merged := make([]*Order, 0, n)
	for _, c := range collections {
		merged = append(merged, c...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SortTime().After(merged[j].SortTime())
	})
	return merged
}

// MatchesSearch is a case-insensitive substring match against the order's
// JSON encoding, so every field is searchable.
func MatchesSearch(o *Order, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return false
	}
	return bytes.Contains(bytes.ToLower(raw), []byte(strings.ToLower(term)))
}

func FilterOrders(orders []*Order, search string, tab StatusTab) []*Order {
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if !tab.Matches(o) {
			continue
		}
		if !MatchesSearch(o, search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// DedupeByOrderID keeps the first order seen for each business number.
// Orders without a number are never collapsed.
func DedupeByOrderID(orders []*Order) []*Order {
	seen := make(map[string]struct{}, len(orders))
	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if o.OrderID != "" {
			if _, ok := seen[o.OrderID]; ok {
				continue
			}
			seen[o.OrderID] = struct{}{}
		}
		out = append(out, o)
	}
	return out
}

// Paginate slices one page out of items. The page is clamped into
// [1, max(1, totalPages)] instead of wrapping.
func Paginate(orders []*Order, page, pageSize int) OrderPage {
	pageSize = NormalizePageSize(pageSize)
	total := len(orders)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return OrderPage{
		Orders: orders[start:end],
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
			HasPrev:    page > 1,
			HasNext:    page < totalPages,
		},
	}
}

// BuildOrderPage runs the full listing pipeline over an already merged list.
func BuildOrderPage(merged []*Order, q OrderQuery) OrderPage {
	filtered := FilterOrders(merged, q.Search, q.Tab)
	return Paginate(DedupeByOrderID(filtered), q.Page, q.PageSize)
}
