package domain

// --- Shared Custom Types ---

// ImportResult is returned by the CSV import.
type ImportResult struct {
	SavedOrders []*Order `json:"savedOrders"`
	Count       int      `json:"count"`
	ArchiveURL  string   `json:"archiveUrl,omitempty"`
}

// SyncResult is returned by an upstream refresh.
// Fetched counts every upstream order; UpstreamOnly counts those not yet in
// the local store.
type SyncResult struct {
	Fetched      int `json:"fetched"`
	UpstreamOnly int `json:"upstreamOnly"`
}

// Enums lists every closed enumeration the dashboard renders.
type Enums struct {
	OrderStatuses []OrderStatus     `json:"orderStatuses"`
	StatusTabs    []StatusTab       `json:"statusTabs"`
	PaymentModes  []PaymentMode     `json:"paymentModes"`
	Actions       []OrderAction     `json:"actions"`
	PageSizes     []int             `json:"pageSizes"`
	Labels        map[string]string `json:"labels"`
}

func CurrentEnums() Enums {
	labels := make(map[string]string, len(OrderStatuses))
	for _, s := range OrderStatuses {
		labels[string(s)] = s.Label()
	}
	return Enums{
		OrderStatuses: OrderStatuses,
		StatusTabs:    StatusTabs,
		PaymentModes:  PaymentModes,
		Actions:       OrderActions,
		PageSizes:     PageSizes,
		Labels:        labels,
	}
}
