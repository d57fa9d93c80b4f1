package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func returnableOrder() *Order {
	amount := 1499.0
	return &Order{
		ID:               "o-1",
		ShopifyID:        "5521",
		OrderID:          "1042",
		CustomerName:     "Asha Verma",
		CustomerPhone:    "9876543210",
		Amount:           &amount,
		PaymentMode:      PaymentModePrepaid,
		GSTINNumber:      "27AAAPL1234C1ZV",
		HSNCode:          "6211",
		InvoiceReference: "INV-77",
		Products: []Product{
			{ProductName: "Kurta", Quantity: 1, UploadedImage: "https://cdn/x.webp", SmartCheck: NewImageSmartCheck("https://cdn/x.webp")},
			{ProductName: "Dupatta", Quantity: 2},
			{ProductName: "Scarf", Quantity: 1},
		},
		Status: OrderStatusDelivered,
	}
}

func TestBuildReturnPayload(t *testing.T) {
	o := returnableOrder()

	p, err := BuildReturnPayload(o, []int{2, 0, 2})
	require.NoError(t, err)

	require.Len(t, p.Products, 2)
	assert.Equal(t, "Kurta", p.Products[0].ProductName)
	require.NotNil(t, p.Products[0].SmartCheck)
	assert.Equal(t, SmartCheckImageVerification, p.Products[0].SmartCheck.Checks[0].Type)
	assert.Equal(t, "Scarf", p.Products[1].ProductName)

	assert.Equal(t, DefaultVendorName, p.VendorName)
	assert.Equal(t, "27AAAPL1234C1ZV", p.GSTIN)
	assert.Equal(t, "6211", p.HSN)
	assert.Equal(t, "INV-77", p.InvoiceID)
	assert.Equal(t, PaymentModePrepaid, p.PaymentMode)
}

func TestBuildReturnPayloadKeepsVendor(t *testing.T) {
	o := returnableOrder()
	o.VendorName = "Delhivery"

	p, err := BuildReturnPayload(o, []int{1})
	require.NoError(t, err)
	assert.Equal(t, "Delhivery", p.VendorName)
}

func TestBuildReturnPayloadRejectsEmptyAndOutOfRange(t *testing.T) {
	o := returnableOrder()

	_, err := BuildReturnPayload(o, nil)
	assert.ErrorIs(t, err, ErrNoProductsSelected)

	_, err = BuildReturnPayload(o, []int{-1})
	assert.ErrorIs(t, err, ErrNoProductsSelected)

	_, err = BuildReturnPayload(o, []int{3})
	assert.ErrorIs(t, err, ErrProductIndex)
}

func TestMarkReturnRequestedSeedsTracking(t *testing.T) {
	o := returnableOrder()
	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

	o.MarkReturnRequested("EK123", now)

	assert.Equal(t, OrderStatusReturnRequested, o.Status)
	assert.Equal(t, "EK123", o.ReturnTracking.EkartTrackingID)
	require.Len(t, o.ReturnTracking.History, 1)
	assert.Equal(t, TrackingStatusReturnInitiated, o.ReturnTracking.History[0].Status)
	assert.Equal(t, now, o.ReturnTracking.History[0].Timestamp)
	require.NotNil(t, o.ReturnTracking.LastUpdated)
}

func TestSummarizeReturns(t *testing.T) {
	results := []ReturnResult{
		{OrderID: "A", TrackingID: "T1"},
		{OrderID: "B", Err: ErrNoProductsSelected},
		{OrderID: "C", TrackingID: "T3"},
		{OrderID: "D", Err: errors.New("carrier down")},
	}

	sum := SummarizeReturns(results)
	assert.Equal(t, 2, sum.Succeeded)
	assert.Equal(t, 2, sum.Failed)
	require.Len(t, sum.Results, 4)
	assert.Equal(t, "B", sum.Results[1].OrderID)
	assert.False(t, sum.Results[1].Success)
	assert.Equal(t, ErrNoProductsSelected.Error(), sum.Results[1].Error)
	assert.Equal(t, "T3", sum.Results[2].TrackingID)
}

func TestCloneAsDoesNotShareState(t *testing.T) {
	o := returnableOrder()
	o.MarkReturnRequested("EK1", time.Now())

	c := o.CloneAs("new-id")
	assert.Equal(t, "new-id", c.ID)
	assert.Equal(t, "1042-CLONE", c.OrderID)
	assert.Equal(t, o.Status, c.Status)

	c.Products[0].SmartCheck.Checks[0].Images[0] = "changed"
	c.ReturnTracking.History[0].Status = "changed"
	assert.Equal(t, "https://cdn/x.webp", o.Products[0].SmartCheck.Checks[0].Images[0])
	assert.Equal(t, TrackingStatusReturnInitiated, o.ReturnTracking.History[0].Status)
}
