package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"orderdesk-backend/internal/domain"
	memcache "orderdesk-backend/internal/infrastructure/cache"
	"orderdesk-backend/pkg/cache"

	"github.com/google/uuid"
)

// --- Orders ---

type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  []*domain.Order
	listErr error
	saveErr error
	updates int
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = o.Copy()
	}
	return out, nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o.Copy(), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderID == orderID {
			return o.Copy(), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) ExistingOrderIDs(ctx context.Context, orderIDs []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, o := range r.orders {
		if slices.Contains(orderIDs, o.OrderID) {
			out = append(out, o.OrderID)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	for _, existing := range r.orders {
		if existing.OrderID == o.OrderID {
			return &domain.DuplicateOrdersError{OrderIDs: []string{o.OrderID}}
		}
	}
	if _, err := uuid.Parse(o.ID); err != nil {
		o.ID = uuid.NewString()
	}
	o.Source = domain.SourceLocal
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	r.orders = append(r.orders, o.Copy())
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	for i, existing := range r.orders {
		if existing.ID == o.ID {
			o.UpdatedAt = time.Now().UTC()
			r.orders[i] = o.Copy()
			r.updates++
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = slices.Delete(r.orders, i, i+1)
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) get(id string) *domain.Order {
	o, _ := r.GetByID(context.Background(), id)
	return o
}

type fakeUpstream struct {
	orders []*domain.Order
	err    error
	calls  int
}

func (f *fakeUpstream) FetchOrders(ctx context.Context) ([]*domain.Order, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

type fakeTx struct{ calls int }

func (t *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

// --- Carrier ---

type fakeCarrier struct {
	mu        sync.Mutex
	payloads  []*domain.ReturnPayload
	failFor   map[string]error
	tracking  *domain.ReturnTracking
	trackErr  error
	nextID    int
	trackedID string
}

func (c *fakeCarrier) CreateReturn(ctx context.Context, p *domain.ReturnPayload) (*domain.CarrierReturn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, p)
	if err, ok := c.failFor[p.OrderID]; ok {
		return nil, err
	}
	c.nextID++
	return &domain.CarrierReturn{TrackingID: fmt.Sprintf("EK-%d", c.nextID)}, nil
}

func (c *fakeCarrier) FetchTracking(ctx context.Context, id string) (*domain.ReturnTracking, error) {
	c.trackedID = id
	if c.trackErr != nil {
		return nil, c.trackErr
	}
	return c.tracking, nil
}

type fakePublisher struct {
	events []domain.ReturnEvent
	err    error
}

func (p *fakePublisher) PublishReturnRequested(ctx context.Context, e domain.ReturnEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeStorage struct {
	puts    map[string][]byte
	folders []string
	deleted []string
	err     error
}

func (s *fakeStorage) Put(ctx context.Context, folder string, data []byte, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.puts == nil {
		s.puts = map[string][]byte{}
	}
	url := fmt.Sprintf("https://cdn.test/%s/%d", folder, len(s.puts)+1)
	s.puts[url] = data
	s.folders = append(s.folders, folder)
	return url, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

// --- Users ---

type fakeUserRepo struct {
	users []*domain.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// --- Fixtures ---

var errCarrierDown = errors.New("connection refused")

type harness struct {
	repo       *fakeOrderRepo
	upstream   *fakeUpstream
	cache      cache.CacheService
	store      *OrderStore
	selections *SelectionUsecase
	carrier    *fakeCarrier
	publisher  *fakePublisher
	storage    *fakeStorage
	orders     *OrderUsecase
	returns    *ReturnUsecase
	actions    *ActionUsecase
	session    *domain.Session
}

func newHarness(local ...*domain.Order) *harness {
	h := &harness{
		repo:      &fakeOrderRepo{},
		upstream:  &fakeUpstream{},
		cache:     memcache.NewMemoryCache(time.Minute, time.Minute),
		carrier:   &fakeCarrier{failFor: map[string]error{}},
		publisher: &fakePublisher{},
		storage:   &fakeStorage{},
		session:   &domain.Session{UserID: uuid.NewString(), Email: "ops@example.com", Role: domain.RoleOperator},
	}
	for _, o := range local {
		h.repo.orders = append(h.repo.orders, o)
	}
	h.store = NewOrderStore(h.repo, h.upstream, h.cache, time.Minute)
	h.selections = NewSelectionUsecase(h.cache, time.Hour, time.Minute)
	h.orders = NewOrderUsecase(h.store, h.repo, h.selections)
	h.returns = NewReturnUsecase(h.store, h.selections, h.carrier, h.publisher, h.storage)
	h.actions = NewActionUsecase(h.orders, h.returns)
	return h
}

func day(d int) *time.Time {
	t := time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func localOrder(orderID string, d int, products ...string) *domain.Order {
	o := &domain.Order{
		ID:            uuid.NewString(),
		Source:        domain.SourceLocal,
		OrderID:       orderID,
		OrderDate:     day(d),
		CustomerName:  "Asha Rao",
		CustomerPhone: "9876543210",
		Pincode:       "411001",
		Status:        domain.OrderStatusNew,
		ReturnTracking: domain.ReturnTracking{
			History: []domain.TrackingEvent{},
		},
		CreatedAt: *day(d),
	}
	for _, p := range products {
		o.Products = append(o.Products, domain.Product{ProductName: p, Quantity: 1})
	}
	return o
}

func upstreamOrder(orderID string, d int, products ...string) *domain.Order {
	o := localOrder(orderID, d, products...)
	o.ID = domain.UpstreamIDPrefix + orderID
	o.ShopifyID = orderID
	o.Source = domain.SourceShopify
	return o
}
