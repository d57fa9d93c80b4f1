package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"orderdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestReturnWithoutSelectionSkipsCarrier(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	h := newHarness(o)

	_, res, err := h.returns.RequestReturn(context.Background(), h.session, o.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNoProductsSelected)
	assert.False(t, res.OK())
	assert.Empty(t, h.carrier.payloads)
	assert.Equal(t, domain.OrderStatusNew, h.repo.get(o.ID).Status)
}

func TestRequestReturnSeedsTracking(t *testing.T) {
	o := localOrder("1001", 3, "Kurta", "Dupatta", "Saree")
	o.Products[2].SmartCheck = domain.NewImageSmartCheck("https://cdn.test/s.webp")
	h := newHarness(o)
	h.selections.SetProducts(h.session, o.ID, []int{2, 0})
	h.selections.SetOrderChecked(h.session, o.ID, true)

	updated, res, err := h.returns.RequestReturn(context.Background(), h.session, o.ID, nil)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "EK-1", res.TrackingID)

	require.Len(t, h.carrier.payloads, 1)
	p := h.carrier.payloads[0]
	require.Len(t, p.Products, 2)
	assert.Equal(t, "Kurta", p.Products[0].ProductName)
	assert.Equal(t, "Saree", p.Products[1].ProductName)
	require.NotNil(t, p.Products[1].SmartCheck)
	assert.Equal(t, domain.DefaultVendorName, p.VendorName)

	assert.Equal(t, domain.OrderStatusReturnRequested, updated.Status)
	stored := h.repo.get(o.ID)
	assert.Equal(t, domain.OrderStatusReturnRequested, stored.Status)
	assert.Equal(t, "EK-1", stored.ReturnTracking.EkartTrackingID)
	require.Len(t, stored.ReturnTracking.History, 1)
	assert.Equal(t, domain.TrackingStatusReturnInitiated, stored.ReturnTracking.History[0].Status)

	sel := h.selections.Get(h.session)
	assert.Empty(t, sel.ProductIndices(o.ID))
	assert.False(t, sel.IsChecked(o.ID))

	require.Len(t, h.publisher.events, 1)
	assert.Equal(t, "1001", h.publisher.events[0].OrderID)
	assert.Equal(t, 2, h.publisher.events[0].Products)
	assert.Equal(t, "ops@example.com", h.publisher.events[0].RequestedBy)

	assert.Equal(t, domain.InFlightNone, h.selections.InFlight(h.session).Kind)
}

func TestRequestReturnCarrierFailureLeavesOrder(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	h := newHarness(o)
	h.carrier.failFor["1001"] = fmt.Errorf("%w: pincode not serviceable", domain.ErrCarrierRejected)

	_, _, err := h.returns.RequestReturn(context.Background(), h.session, o.ID, []int{0})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCarrierRejected)

	stored := h.repo.get(o.ID)
	assert.Equal(t, domain.OrderStatusNew, stored.Status)
	assert.Empty(t, stored.ReturnTracking.History)
	assert.Zero(t, h.repo.updates)
	assert.Empty(t, h.publisher.events)
}

func TestRequestReturnBadIndex(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	h := newHarness(o)

	_, _, err := h.returns.RequestReturn(context.Background(), h.session, o.ID, []int{4})
	assert.ErrorIs(t, err, domain.ErrProductIndex)
	assert.Empty(t, h.carrier.payloads)
}

func TestRequestReturnRejectedWhilePending(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	h := newHarness(o)
	require.True(t, h.selections.acquire(h.session, domain.InFlight{Kind: domain.InFlightBulk}))

	_, _, err := h.returns.RequestReturn(context.Background(), h.session, o.ID, []int{0})
	assert.ErrorIs(t, err, domain.ErrReturnInProgress)
	assert.Empty(t, h.carrier.payloads)

	_, err = h.returns.BulkReturn(context.Background(), h.session, BulkReturnRequest{OrderIDs: []string{o.ID}, Confirm: true})
	assert.ErrorIs(t, err, domain.ErrReturnInProgress)

	other := &domain.Session{UserID: "someone-else"}
	_, _, err = h.returns.RequestReturn(context.Background(), other, o.ID, []int{0})
	assert.NoError(t, err, "the lock is per session")
}

func TestRequestReturnPublishFailureIsNotFatal(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	h := newHarness(o)
	h.publisher.err = errors.New("broker unavailable")

	_, res, err := h.returns.RequestReturn(context.Background(), h.session, o.ID, []int{0})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, domain.OrderStatusReturnRequested, h.repo.get(o.ID).Status)
}

func TestRequestReturnMaterializesUpstreamOrder(t *testing.T) {
	h := newHarness()
	up := upstreamOrder("1003", 4, "Kurta")
	h.upstream.orders = []*domain.Order{up}

	updated, _, err := h.returns.RequestReturn(context.Background(), h.session, up.ID, []int{0})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocal, updated.Source)
	require.Len(t, h.repo.orders, 1)
	assert.Equal(t, domain.OrderStatusReturnRequested, h.repo.orders[0].Status)
	assert.Equal(t, updated.ID, h.publisher.events[0].StoreID)
}

func TestBulkReturn(t *testing.T) {
	a := localOrder("1001", 3, "Kurta")
	b := localOrder("1002", 4, "Saree")
	c := localOrder("1003", 5, "Dupatta")
	h := newHarness(a, b, c)

	for _, o := range []*domain.Order{a, b, c} {
		h.selections.SetOrderChecked(h.session, o.ID, true)
	}
	h.selections.SetProducts(h.session, a.ID, []int{0})
	h.selections.SetProducts(h.session, c.ID, []int{0})

	summary, err := h.returns.BulkReturn(context.Background(), h.session, BulkReturnRequest{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 3)
	assert.Equal(t, a.ID, summary.Results[0].OrderID)
	assert.True(t, summary.Results[0].Success)
	assert.False(t, summary.Results[1].Success)
	assert.Equal(t, domain.ErrNoProductsSelected.Error(), summary.Results[1].Error)
	assert.True(t, summary.Results[2].Success)

	require.Len(t, h.carrier.payloads, 2, "order without products never reaches the carrier")
	assert.Equal(t, "1001", h.carrier.payloads[0].OrderID)
	assert.Equal(t, "1003", h.carrier.payloads[1].OrderID)

	assert.Equal(t, domain.OrderStatusNew, h.repo.get(b.ID).Status)
	assert.Equal(t, []string{b.ID}, h.selections.Get(h.session).CheckedOrders)
}

func TestBulkReturnContinuesAfterCarrierFailure(t *testing.T) {
	a := localOrder("1001", 3, "Kurta")
	b := localOrder("1002", 4, "Saree")
	h := newHarness(a, b)
	h.carrier.failFor["1001"] = errCarrierDown
	h.selections.SetProducts(h.session, a.ID, []int{0})
	h.selections.SetProducts(h.session, b.ID, []int{0})

	summary, err := h.returns.BulkReturn(context.Background(), h.session, BulkReturnRequest{OrderIDs: []string{a.ID, b.ID}, Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, summary.Results[0].Error, "connection refused")
	assert.Equal(t, domain.OrderStatusReturnRequested, h.repo.get(b.ID).Status)
}

func TestBulkReturnCollapsesRepeatedIDs(t *testing.T) {
	a := localOrder("1001", 3, "Kurta")
	h := newHarness(a)
	h.selections.SetProducts(h.session, a.ID, []int{0})

	summary, err := h.returns.BulkReturn(context.Background(), h.session, BulkReturnRequest{OrderIDs: []string{a.ID, a.ID, ""}, Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Zero(t, summary.Failed)
	require.Len(t, summary.Results, 1)
	assert.Len(t, h.carrier.payloads, 1)
}

func TestBulkReturnFinishesAfterCallerCancels(t *testing.T) {
	a := localOrder("1001", 3, "Kurta")
	b := localOrder("1002", 4, "Saree")
	h := newHarness(a, b)
	h.selections.SetProducts(h.session, a.ID, []int{0})
	h.selections.SetProducts(h.session, b.ID, []int{0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := h.returns.BulkReturn(ctx, h.session, BulkReturnRequest{OrderIDs: []string{a.ID, b.ID}, Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, domain.OrderStatusReturnRequested, h.repo.get(a.ID).Status)
	assert.Equal(t, domain.OrderStatusReturnRequested, h.repo.get(b.ID).Status)
}

func TestBulkReturnPreconditions(t *testing.T) {
	h := newHarness()

	_, err := h.returns.BulkReturn(context.Background(), h.session, BulkReturnRequest{OrderIDs: []string{"x"}})
	assert.ErrorIs(t, err, domain.ErrConfirmationMissing)

	_, err = h.returns.BulkReturn(context.Background(), h.session, BulkReturnRequest{Confirm: true})
	assert.ErrorIs(t, err, domain.ErrNoOrdersSelected)
	assert.Empty(t, h.carrier.payloads)
}

func TestRefreshTracking(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	o.Status = domain.OrderStatusReturnRequested
	o.ReturnTracking = domain.ReturnTracking{
		CurrentStatus:   domain.TrackingStatusReturnInitiated,
		EkartTrackingID: "EK-9",
		History:         []domain.TrackingEvent{{Status: domain.TrackingStatusReturnInitiated}},
	}
	h := newHarness(o)
	now := time.Now().UTC()
	h.carrier.tracking = &domain.ReturnTracking{
		CurrentStatus:   "OutForPickup",
		EkartTrackingID: "EK-9",
		History: []domain.TrackingEvent{
			{Status: domain.TrackingStatusReturnInitiated},
			{Status: "OutForPickup", Timestamp: now},
		},
		LastUpdated: &now,
	}

	updated, err := h.returns.RefreshTracking(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, "EK-9", h.carrier.trackedID)
	assert.Equal(t, "OutForPickup", updated.ReturnTracking.CurrentStatus)
	assert.Len(t, h.repo.get(o.ID).ReturnTracking.History, 2)
}

func TestRefreshTrackingFailureKeepsRecord(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	o.ReturnTracking.EkartTrackingID = "EK-9"
	o.ReturnTracking.CurrentStatus = domain.TrackingStatusReturnInitiated
	h := newHarness(o)
	h.carrier.trackErr = errCarrierDown

	_, err := h.returns.RefreshTracking(context.Background(), o.ID)
	require.Error(t, err)
	assert.Equal(t, domain.TrackingStatusReturnInitiated, h.repo.get(o.ID).ReturnTracking.CurrentStatus)
}

func TestRefreshTrackingWithoutTrackingID(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	h := newHarness(o)

	_, err := h.returns.RefreshTracking(context.Background(), o.ID)
	assert.ErrorIs(t, err, domain.ErrNoTrackingID)
	assert.Empty(t, h.carrier.trackedID)
}

func pngBytes(t *testing.T, w, hgt int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, hgt))
	for x := 0; x < w; x++ {
		img.Set(x, x%hgt, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAttachProductImage(t *testing.T) {
	o := localOrder("1001", 3, "Kurta", "Saree")
	o.Products[1].UploadedImage = "https://cdn.test/old"
	h := newHarness(o)

	updated, err := h.returns.AttachProductImage(context.Background(), o.ID, 1, bytes.NewReader(pngBytes(t, 40, 20)), "saree.png")
	require.NoError(t, err)

	url := updated.Products[1].UploadedImage
	assert.True(t, strings.HasPrefix(url, "https://cdn.test/uploads/"))
	require.NotNil(t, updated.Products[1].SmartCheck)
	require.Len(t, updated.Products[1].SmartCheck.Checks, 1)
	assert.Equal(t, domain.SmartCheckImageVerification, updated.Products[1].SmartCheck.Checks[0].Type)
	assert.Equal(t, []string{url}, updated.Products[1].SmartCheck.Checks[0].Images)
	assert.Nil(t, updated.Products[0].SmartCheck)

	assert.Equal(t, url, h.repo.get(o.ID).Products[1].UploadedImage)
	assert.Equal(t, []string{"https://cdn.test/old"}, h.storage.deleted)
}

func TestAttachProductImageFailures(t *testing.T) {
	o := localOrder("1001", 3, "Kurta")
	h := newHarness(o)

	_, err := h.returns.AttachProductImage(context.Background(), o.ID, 3, bytes.NewReader(pngBytes(t, 4, 4)), "a.png")
	assert.ErrorIs(t, err, domain.ErrProductIndex)

	_, err = h.returns.AttachProductImage(context.Background(), o.ID, 0, strings.NewReader("not an image"), "a.png")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	h.storage.err = errors.New("bucket gone")
	_, err = h.returns.AttachProductImage(context.Background(), o.ID, 0, bytes.NewReader(pngBytes(t, 4, 4)), "a.png")
	require.Error(t, err)
	assert.Empty(t, h.repo.get(o.ID).Products[0].UploadedImage, "order untouched when upload fails")

	h.returns.storage = nil
	_, err = h.returns.AttachProductImage(context.Background(), o.ID, 0, bytes.NewReader(pngBytes(t, 4, 4)), "a.png")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
