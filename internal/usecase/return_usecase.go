package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/infrastructure/metrics"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/storage"
	"orderdesk-backend/pkg/utils"
)

const (
	returnModeSingle = "single"
	returnModeBulk   = "bulk"
)

// BulkReturnRequest is the body of POST /returns/bulk. Without OrderIDs the
// checked orders of the stored selection are used.
type BulkReturnRequest struct {
	OrderIDs []string `json:"orderIds"`
	Confirm  bool     `json:"confirm"`
}

type ReturnUsecase struct {
	store      *OrderStore
	selections *SelectionUsecase
	carrier    domain.CarrierClient
	publisher  domain.EventPublisher
	storage    domain.ObjectStorage
	now        func() time.Time
}

// NewReturnUsecase wires the return workflow. objectStorage may be nil, in
// which case image attachment is unavailable.
func NewReturnUsecase(store *OrderStore, selections *SelectionUsecase, carrier domain.CarrierClient, publisher domain.EventPublisher, objectStorage domain.ObjectStorage) *ReturnUsecase {
	return &ReturnUsecase{
		store:      store,
		selections: selections,
		carrier:    carrier,
		publisher:  publisher,
		storage:    objectStorage,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RequestReturn submits one order to the carrier. Without indices the
// session's stored product selection for the order is used.
func (u *ReturnUsecase) RequestReturn(ctx context.Context, session *domain.Session, orderID string, indices []int) (*domain.Order, domain.ReturnResult, error) {
	if !u.selections.acquire(session, domain.InFlight{Kind: domain.InFlightSingle, OrderID: orderID, StartedAt: u.now()}) {
		return nil, domain.ReturnResult{OrderID: orderID, Err: domain.ErrReturnInProgress}, domain.ErrReturnInProgress
	}
	defer u.selections.release(session)

	o, res := u.returnOne(ctx, session, orderID, indices)
	metrics.CountReturn(returnModeSingle, res.Err)
	return o, res, res.Err
}

// BulkReturn submits the orders one after another. A failing order does not
// stop the batch, and orders already accepted are not rolled back. The batch
// runs to the end even if the caller goes away.
func (u *ReturnUsecase) BulkReturn(ctx context.Context, session *domain.Session, req BulkReturnRequest) (*domain.BulkSummary, error) {
	if !req.Confirm {
		return nil, domain.ErrConfirmationMissing
	}

	ids := uniqueIDs(req.OrderIDs)
	if len(ids) == 0 {
		ids = u.selections.Get(session).CheckedOrders
	}
	if len(ids) == 0 {
		return nil, domain.ErrNoOrdersSelected
	}

	if !u.selections.acquire(session, domain.InFlight{Kind: domain.InFlightBulk, StartedAt: u.now()}) {
		return nil, domain.ErrReturnInProgress
	}
	defer u.selections.release(session)

	ctx = context.WithoutCancel(ctx)
	results := make([]domain.ReturnResult, 0, len(ids))
	for _, id := range ids {
		_, res := u.returnOne(ctx, session, id, nil)
		metrics.CountReturn(returnModeBulk, res.Err)
		results = append(results, res)
	}

	summary := domain.SummarizeReturns(results)
	logger.WithContext(ctx).Info().
		Int("orders", len(ids)).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("Bulk return finished")
	return &summary, nil
}

// uniqueIDs drops blank and repeated ids, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (u *ReturnUsecase) returnOne(ctx context.Context, session *domain.Session, orderID string, indices []int) (*domain.Order, domain.ReturnResult) {
	log := logger.WithContext(ctx)
	res := domain.ReturnResult{OrderID: orderID}

	o, err := u.store.Resolve(ctx, orderID)
	if err != nil {
		res.Err = err
		return nil, res
	}

	if indices == nil {
		indices = u.selections.Get(session).ProductIndices(orderID)
	}
	payload, err := domain.BuildReturnPayload(o, indices)
	if err != nil {
		res.Err = err
		return nil, res
	}

	accepted, err := u.carrier.CreateReturn(ctx, payload)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.OrderID).Msg("Carrier return request failed")
		res.Err = err
		return nil, res
	}
	res.TrackingID = accepted.TrackingID

	updated := o.Copy()
	updated.MarkReturnRequested(accepted.TrackingID, u.now())
	if err := u.store.Save(ctx, updated); err != nil {
		log.Error().Err(err).
			Str("order_id", o.OrderID).
			Str("tracking_id", accepted.TrackingID).
			Msg("Return accepted by carrier but order could not be saved")
		res.Err = fmt.Errorf("save returned order: %w", err)
		return nil, res
	}

	u.selections.ClearOrder(session, orderID)

	event := domain.ReturnEvent{
		OrderID:     updated.OrderID,
		StoreID:     updated.ID,
		TrackingID:  accepted.TrackingID,
		Products:    len(payload.Products),
		RequestedBy: session.Email,
		RequestedAt: u.now(),
	}
	if err := u.publisher.PublishReturnRequested(ctx, event); err != nil {
		metrics.CountError("publish_return_event")
		log.Warn().Err(err).Str("order_id", updated.OrderID).Msg("Failed to publish return event")
	}

	log.Info().
		Str("order_id", updated.OrderID).
		Str("tracking_id", accepted.TrackingID).
		Int("products", len(payload.Products)).
		Msg("Return requested")
	return updated, res
}

// RefreshTracking replaces the order's tracking record with the carrier's
// current one. On failure the prior record is left untouched.
func (u *ReturnUsecase) RefreshTracking(ctx context.Context, orderID string) (*domain.Order, error) {
	o, err := u.store.Resolve(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.ReturnTracking.EkartTrackingID == "" {
		return nil, domain.ErrNoTrackingID
	}

	tracking, err := u.carrier.FetchTracking(ctx, o.ReturnTracking.EkartTrackingID)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).
			Str("order_id", o.OrderID).
			Str("tracking_id", o.ReturnTracking.EkartTrackingID).
			Msg("Tracking refresh failed")
		return nil, err
	}

	updated := o.Copy()
	updated.ReturnTracking = *tracking
	if err := u.store.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("save tracking: %w", err)
	}
	return updated, nil
}

// AttachProductImage uploads an image for one product row and records its URL
// on the product and in the product's image-verification check. The order is
// only changed after the upload succeeds.
func (u *ReturnUsecase) AttachProductImage(ctx context.Context, orderID string, index int, file io.Reader, filename string) (*domain.Order, error) {
	if u.storage == nil {
		return nil, domain.ErrStorageUnavailable
	}

	o, err := u.store.Resolve(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(o.Products) {
		return nil, fmt.Errorf("%w: %d (order %s has %d products)", domain.ErrProductIndex, index, o.OrderID, len(o.Products))
	}

	data, contentType, err := utils.ProcessImage(file, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	url, err := u.storage.Put(ctx, storage.FolderUploads, data, contentType)
	if err != nil {
		metrics.CountError("image_upload")
		return nil, fmt.Errorf("upload image: %w", err)
	}

	updated := o.Copy()
	previous := updated.Products[index].UploadedImage
	updated.Products[index].UploadedImage = url
	updated.Products[index].SmartCheck = domain.NewImageSmartCheck(url)

	if err := u.store.Save(ctx, updated); err != nil {
		if delErr := u.storage.DeleteFile(context.WithoutCancel(ctx), url); delErr != nil {
			logger.WithContext(ctx).Warn().Err(delErr).Str("url", url).Msg("Failed to remove orphaned image")
		}
		return nil, fmt.Errorf("save product image: %w", err)
	}

	if previous != "" && previous != url {
		if err := u.storage.DeleteFile(ctx, previous); err != nil {
			logger.WithContext(ctx).Warn().Err(err).Str("url", previous).Msg("Failed to remove replaced image")
		}
	}

	logger.WithContext(ctx).Info().
		Str("order_id", updated.OrderID).
		Int("product", index).
		Str("url", url).
		Msg("Product image attached")
	return updated, nil
}
