package domain

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormNumberUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		set     bool
		value   float64
		invalid bool
	}{
		{`12.5`, true, 12.5, false},
		{`"7"`, true, 7, false},
		{`" 3.25 "`, true, 3.25, false},
		{`""`, false, 0, false},
		{`null`, false, 0, false},
		{`"abc"`, false, 0, true},
		{`"NaN"`, false, 0, true},
		{`"Inf"`, false, 0, true},
		{`"-Infinity"`, false, 0, true},
		{`"1e400"`, false, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var n FormNumber
			require.NoError(t, json.Unmarshal([]byte(tc.in), &n))
			assert.Equal(t, tc.set, n.Set)
			assert.Equal(t, tc.value, n.Value)
			assert.Equal(t, tc.invalid, n.Invalid != "")
		})
	}
}

func validForm() *OrderForm {
	return &OrderForm{
		OrderID:       "1042",
		OrderDate:     "2024-03-05",
		CustomerName:  "Asha Verma",
		CustomerPhone: "9876543210",
	}
}

func TestNormalizeOrderForm(t *testing.T) {
	body := `{
		"orderId": " 1042 ",
		"orderDate": "2024-03-05T18:30:00+05:30",
		"customerName": "Asha Verma",
		"customerPhone": "9876543210",
		"customerEmail": "asha@example.com",
		"deadWeight": "0.5",
		"amount": 1299,
		"cgst": "",
		"paymentMode": "COD",
		"status": "pending",
		"products": [
			{"productName": "Kurta", "quantity": "2"},
			{"productName": "  ", "quantity": 1},
			{"productName": "Dupatta", "quantity": 0},
			{"productName": "Scarf", "quantity": null}
		]
	}`

	var f OrderForm
	require.NoError(t, json.Unmarshal([]byte(body), &f))

	o, err := f.Normalize()
	require.NoError(t, err)

	assert.Equal(t, "1042", o.OrderID)
	require.NotNil(t, o.OrderDate)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), *o.OrderDate)
	require.NotNil(t, o.DeadWeight)
	assert.Equal(t, 0.5, *o.DeadWeight)
	require.NotNil(t, o.Amount)
	assert.Equal(t, 1299.0, *o.Amount)
	assert.Nil(t, o.CGST)
	assert.Equal(t, PaymentModeCOD, o.PaymentMode)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, SourceLocal, o.Source)
	assert.Equal(t, []Product{{ProductName: "Kurta", Quantity: 2}}, o.Products)
}

func TestNormalizeDefaultsStatusToNew(t *testing.T) {
	o, err := validForm().Normalize()
	require.NoError(t, err)
	assert.Equal(t, OrderStatusNew, o.Status)
	assert.Empty(t, o.Products)
}

func TestNormalizeValidationErrors(t *testing.T) {
	f := &OrderForm{
		OrderDate:     "05/03/2024",
		CustomerEmail: "not-an-email",
		PaymentMode:   "UPI",
		Status:        "SHIPPED",
		Amount:        ParseFormNumber("12,00"),
	}

	_, err := f.Normalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"orderId", "customerName", "customerPhone", "customerEmail", "paymentMode", "status", "orderDate", "amount"} {
		assert.Contains(t, ve.Fields, field)
	}
}

func TestFormFromOrder(t *testing.T) {
	w := 1.5
	o := &Order{
		OrderID:    "1042",
		OrderDate:  day(5),
		DeadWeight: &w,
		Status:     OrderStatusDelivered,
	}

	f := FormFromOrder(o)
	assert.Equal(t, "2024-03-05", f.OrderDate)
	assert.True(t, f.DeadWeight.Set)
	assert.Equal(t, 1.5, f.DeadWeight.Value)
	assert.False(t, f.Length.Set)
	assert.Equal(t, "DELIVERED", f.Status)
	require.Len(t, f.Products, 1)
	assert.Empty(t, f.Products[0].ProductName)

	raw, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"length":null`)
	assert.Contains(t, string(raw), `"deadWeight":1.5`)
}
