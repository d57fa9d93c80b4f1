package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, st := range OrderStatuses {
		got, err := ParseOrderStatus(string(st))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	got, err := ParseOrderStatus(" in_transit ")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusInTransit, got)

	_, err = ParseOrderStatus("SHIPPED")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseOrderStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderStatusLabelIsExhaustive(t *testing.T) {
	seen := map[string]bool{}
	for _, st := range OrderStatuses {
		label := st.Label()
		assert.NotEmpty(t, label)
		assert.False(t, seen[label], "duplicate label %q", label)
		seen[label] = true
		assert.True(t, st.Valid())
	}
	assert.False(t, OrderStatus("new").Valid())
}

func TestStatusTabMatches(t *testing.T) {
	withStage := func(status OrderStatus, stage string) *Order {
		return &Order{Status: status, ReturnTracking: ReturnTracking{CurrentStatus: stage}}
	}

	tests := []struct {
		name  string
		tab   StatusTab
		order *Order
		want  bool
	}{
		{"no tab matches everything", "", withStage(OrderStatusCancelled, ""), true},
		{"new tab on new order", TabNew, withStage(OrderStatusNew, ""), true},
		{"new tab on pending order", TabNew, withStage(OrderStatusPending, ""), false},
		{"in transit by status", TabInTransit, withStage(OrderStatusInTransit, ""), true},
		{"in transit by carrier stage", TabInTransit, withStage(OrderStatusReturnRequested, "intransit"), true},
		{"delivered by status", TabDelivered, withStage(OrderStatusDelivered, ""), true},
		{"carrier stage tab", TabOutForPickup, withStage(OrderStatusReturnRequested, "OutForPickup"), true},
		{"carrier stage with spaces", TabReceivedAtFacility, withStage(OrderStatusReturnRequested, "received at facility"), true},
		{"carrier stage mismatch", TabExpired, withStage(OrderStatusReturnRequested, "Exception"), false},
		{"stage tab ignores status", TabException, withStage(OrderStatusNew, ""), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.tab.Matches(tc.order))
		})
	}
}

func TestParseStatusTab(t *testing.T) {
	tab, err := ParseStatusTab("")
	require.NoError(t, err)
	assert.Equal(t, StatusTab(""), tab)

	tab, err = ParseStatusTab("out for delivery")
	require.NoError(t, err)
	assert.Equal(t, TabOutForDelivery, tab)

	_, err = ParseStatusTab("Lost")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
