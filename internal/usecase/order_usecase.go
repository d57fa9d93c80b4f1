package usecase

import (
	"context"
	"fmt"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

type OrderUsecase struct {
	store      *OrderStore
	orderRepo  domain.OrderRepository
	selections *SelectionUsecase
}

func NewOrderUsecase(store *OrderStore, repo domain.OrderRepository, selections *SelectionUsecase) *OrderUsecase {
	return &OrderUsecase{
		store:      store,
		orderRepo:  repo,
		selections: selections,
	}
}

// --- Listing ---

// ListOrders fetches both sources concurrently, merges them newest first,
// filters, de-duplicates by order number and returns one page.
func (u *OrderUsecase) ListOrders(ctx context.Context, q domain.OrderQuery) (*domain.OrderPage, error) {
	var local, upstream []*domain.Order

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := u.orderRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("list local orders: %w", err)
		}
		local = orders
		return nil
	})
	g.Go(func() error {
		orders, err := u.store.Upstream(gctx, false)
		if err != nil {
			return err
		}
		upstream = orders
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.WithContext(ctx).Error().Err(err).Msg("Failed to load orders")
		return nil, err
	}

	page := domain.BuildOrderPage(domain.MergeOrders(local, upstream), q)
	return &page, nil
}

// SyncUpstream refreshes the upstream snapshot. The backing list changes, so
// selections are reset.
func (u *OrderUsecase) SyncUpstream(ctx context.Context) (*domain.SyncResult, error) {
	upstream, err := u.store.Upstream(ctx, true)
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Msg("Upstream sync failed")
		return nil, err
	}

	numbers := make([]string, 0, len(upstream))
	for _, o := range upstream {
		numbers = append(numbers, o.OrderID)
	}
	existing, err := u.orderRepo.ExistingOrderIDs(ctx, numbers)
	if err != nil {
		return nil, fmt.Errorf("check local orders: %w", err)
	}

	u.selections.Reset(ctx)
	res := &domain.SyncResult{
		Fetched:      len(upstream),
		UpstreamOnly: len(upstream) - len(existing),
	}
	logger.WithContext(ctx).Info().
		Int("fetched", res.Fetched).
		Int("upstream_only", res.UpstreamOnly).
		Msg("Upstream orders synced")
	return res, nil
}

// --- CRUD ---

func (u *OrderUsecase) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return u.store.Resolve(ctx, id)
}

func (u *OrderUsecase) GetForm(ctx context.Context, id string) (*domain.OrderForm, error) {
	o, err := u.store.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.FormFromOrder(o), nil
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, form *domain.OrderForm) (*domain.Order, error) {
	o, err := form.Normalize()
	if err != nil {
		return nil, err
	}
	if o.ReturnTracking.History == nil {
		o.ReturnTracking.History = []domain.TrackingEvent{}
	}

	if err := u.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}
	u.selections.Reset(ctx)

	logger.WithContext(ctx).Info().Str("id", o.ID).Str("order_id", o.OrderID).Msg("Order created")
	return o, nil
}

// UpdateOrder replaces the order's fields with the form. Attached product
// images survive when the product at the same row keeps its name. Status and
// return tracking are kept unless the form carries them.
func (u *OrderUsecase) UpdateOrder(ctx context.Context, id string, form *domain.OrderForm) (*domain.Order, error) {
	existing, err := u.store.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	o, err := form.Normalize()
	if err != nil {
		return nil, err
	}
	o.ID = existing.ID
	o.Source = existing.Source
	o.CreatedAt = existing.CreatedAt
	if form.Status == "" && existing.Status != "" {
		o.Status = existing.Status
	}
	if form.ReturnTracking == nil {
		o.ReturnTracking = existing.ReturnTracking
	}
	for i := range o.Products {
		if i < len(existing.Products) && existing.Products[i].ProductName == o.Products[i].ProductName {
			o.Products[i].UploadedImage = existing.Products[i].UploadedImage
			o.Products[i].SmartCheck = existing.Products[i].SmartCheck
		}
	}

	if err := u.store.Save(ctx, o); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().Str("id", o.ID).Str("order_id", o.OrderID).Msg("Order updated")
	return o, nil
}

func (u *OrderUsecase) DeleteOrder(ctx context.Context, id string) error {
	o, err := u.store.Resolve(ctx, id)
	if err != nil {
		return err
	}
	if o.IsUpstreamOnly() {
		return domain.ErrUpstreamReadOnly
	}
	if err := u.orderRepo.Delete(ctx, o.ID); err != nil {
		return err
	}
	u.selections.Reset(ctx)

	logger.WithContext(ctx).Info().Str("id", o.ID).Str("order_id", o.OrderID).Msg("Order deleted")
	return nil
}

// CloneOrder stores a copy of the order under a new id and a "-CLONE" number.
func (u *OrderUsecase) CloneOrder(ctx context.Context, id string) (*domain.Order, error) {
	o, err := u.store.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	clone := o.CloneAs("")
	if err := u.orderRepo.Create(ctx, clone); err != nil {
		return nil, err
	}
	u.selections.Reset(ctx)

	logger.WithContext(ctx).Info().Str("source_id", o.ID).Str("id", clone.ID).Msg("Order cloned")
	return clone, nil
}

func (u *OrderUsecase) AddTag(ctx context.Context, id, tag string) (*domain.Order, error) {
	if tag == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"tag": "is required"}}
	}
	o, err := u.store.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := o.Copy()
	updated.Tag = tag
	if err := u.store.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
