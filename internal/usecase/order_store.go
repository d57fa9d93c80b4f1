package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/cache"
	"orderdesk-backend/pkg/logger"
)

const upstreamSnapshotKey = "upstream:orders"

// OrderStore reads and writes orders across the two sources: the local
// database and the upstream storefront, whose snapshot is cached.
type OrderStore struct {
	repo        domain.OrderRepository
	upstream    domain.UpstreamClient
	cache       cache.CacheService
	snapshotTTL time.Duration
}

func NewOrderStore(repo domain.OrderRepository, upstream domain.UpstreamClient, c cache.CacheService, snapshotTTL time.Duration) *OrderStore {
	return &OrderStore{
		repo:        repo,
		upstream:    upstream,
		cache:       c,
		snapshotTTL: snapshotTTL,
	}
}

// Upstream returns the cached upstream snapshot, fetching it when absent or
// when refresh is set.
func (s *OrderStore) Upstream(ctx context.Context, refresh bool) ([]*domain.Order, error) {
	if !refresh {
		if cached, found := s.cache.Get(upstreamSnapshotKey); found {
			if orders, ok := cached.([]*domain.Order); ok {
				return orders, nil
			}
		}
	}

	orders, err := s.upstream.FetchOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch upstream orders: %w", err)
	}
	s.cache.Set(upstreamSnapshotKey, orders, s.snapshotTTL)
	return orders, nil
}

// Resolve finds an order by store id. Upstream ids resolve to the local copy
// when the order has already been materialized.
func (s *OrderStore) Resolve(ctx context.Context, id string) (*domain.Order, error) {
	if !strings.HasPrefix(id, domain.UpstreamIDPrefix) {
		o, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return o, nil
	}

	orders, err := s.Upstream(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, up := range orders {
		if up.ID != id {
			continue
		}
		local, err := s.repo.GetByOrderID(ctx, up.OrderID)
		if err == nil {
			return local, nil
		}
		if !errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		return up.Copy(), nil
	}
	return nil, domain.ErrOrderNotFound
}

// Save persists an order. An upstream-only order is materialized into the
// local store on its first write and gets a local id.
func (s *OrderStore) Save(ctx context.Context, o *domain.Order) error {
	if !o.IsUpstreamOnly() {
		return s.repo.Update(ctx, o)
	}

	upstreamID := o.ID
	o.ID = ""
	o.Source = domain.SourceLocal
	if err := s.repo.Create(ctx, o); err != nil {
		o.ID = upstreamID
		o.Source = domain.SourceShopify
		return err
	}
	logger.WithContext(ctx).Info().
		Str("upstream_id", upstreamID).
		Str("order_id", o.OrderID).
		Str("id", o.ID).
		Msg("Upstream order materialized locally")
	return nil
}
