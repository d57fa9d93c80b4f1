package usecase

import (
	"context"
	"slices"
	"sync"
	"time"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/pkg/cache"
	"orderdesk-backend/pkg/logger"
)

const (
	selectionGenerationKey = "selection:generation"
	selectionKeyPrefix     = "selection:"
	inFlightKeyPrefix      = "inflight:"
)

// SelectionUsecase keeps each operator's checkbox state and return lock in
// the cache. Selections belong to one generation of the order list; bumping
// the generation resets every selection.
type SelectionUsecase struct {
	cache   cache.CacheService
	ttl     time.Duration
	lockTTL time.Duration
	mu      sync.Mutex
}

func NewSelectionUsecase(c cache.CacheService, ttl, lockTTL time.Duration) *SelectionUsecase {
	return &SelectionUsecase{cache: c, ttl: ttl, lockTTL: lockTTL}
}

func (u *SelectionUsecase) generation() int64 {
	return u.cache.Increment(selectionGenerationKey, 0)
}

// Reset invalidates every stored selection.
func (u *SelectionUsecase) Reset(ctx context.Context) {
	gen := u.cache.Increment(selectionGenerationKey, 1)
	logger.WithContext(ctx).Debug().Int64("generation", gen).Msg("Selections reset")
}

// load returns a private copy of the stored selection, or an empty one when
// it is missing or stale. Callers hold mu.
func (u *SelectionUsecase) load(userID string) *domain.Selection {
	gen := u.generation()
	cached, found := u.cache.Get(selectionKeyPrefix + userID)
	if !found {
		return domain.NewSelection(gen)
	}
	sel, ok := cached.(*domain.Selection)
	if !ok || sel.Generation != gen {
		return domain.NewSelection(gen)
	}

	cp := &domain.Selection{
		Generation:    sel.Generation,
		CheckedOrders: slices.Clone(sel.CheckedOrders),
		Products:      make(map[string][]int, len(sel.Products)),
	}
	for id, idx := range sel.Products {
		cp.Products[id] = slices.Clone(idx)
	}
	return cp
}

func (u *SelectionUsecase) update(userID string, fn func(*domain.Selection)) *domain.Selection {
	u.mu.Lock()
	defer u.mu.Unlock()

	sel := u.load(userID)
	fn(sel)
	u.cache.Set(selectionKeyPrefix+userID, sel, u.ttl)
	return u.load(userID)
}

func (u *SelectionUsecase) Get(session *domain.Session) *domain.Selection {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.load(session.UserID)
}

func (u *SelectionUsecase) View(session *domain.Session) domain.SelectionView {
	return domain.SelectionView{
		Selection: u.Get(session),
		InFlight:  u.InFlight(session),
	}
}

func (u *SelectionUsecase) SetOrderChecked(session *domain.Session, orderID string, checked bool) *domain.Selection {
	return u.update(session.UserID, func(s *domain.Selection) {
		s.SetChecked(orderID, checked)
	})
}

func (u *SelectionUsecase) SetProducts(session *domain.Session, orderID string, indices []int) *domain.Selection {
	return u.update(session.UserID, func(s *domain.Selection) {
		s.SetProducts(orderID, indices)
	})
}

func (u *SelectionUsecase) ToggleProduct(session *domain.Session, orderID string, index int, checked bool) *domain.Selection {
	return u.update(session.UserID, func(s *domain.Selection) {
		s.ToggleProduct(orderID, index, checked)
	})
}

func (u *SelectionUsecase) ClearOrder(session *domain.Session, orderID string) *domain.Selection {
	return u.update(session.UserID, func(s *domain.Selection) {
		s.ClearOrder(orderID)
	})
}

func (u *SelectionUsecase) Clear(session *domain.Session) *domain.Selection {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cache.Delete(selectionKeyPrefix + session.UserID)
	return u.load(session.UserID)
}

// InFlight reports the return work pending for the session.
func (u *SelectionUsecase) InFlight(session *domain.Session) domain.InFlight {
	cached, found := u.cache.Get(inFlightKeyPrefix + session.UserID)
	if !found {
		return domain.InFlight{Kind: domain.InFlightNone}
	}
	f, ok := cached.(domain.InFlight)
	if !ok {
		return domain.InFlight{Kind: domain.InFlightNone}
	}
	return f
}

// acquire marks return work as pending for the session. It fails while any
// other return from the same session is pending.
func (u *SelectionUsecase) acquire(session *domain.Session, f domain.InFlight) bool {
	return u.cache.Add(inFlightKeyPrefix+session.UserID, f, u.lockTTL)
}

func (u *SelectionUsecase) release(session *domain.Session) {
	u.cache.Delete(inFlightKeyPrefix + session.UserID)
}
