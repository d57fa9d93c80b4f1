package sqlcrepo

import (
	"context"
	"fmt"

	"orderdesk-backend/db/sqlc"
	"orderdesk-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type orderRepository struct {
	db      *pgxpool.Pool
	queries *sqlc.Queries
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &orderRepository{
		db:      db,
		queries: sqlc.New(db),
	}
}

// --- Mappers ---

func sqlcOrderToDomain(o sqlc.Order) (*domain.Order, error) {
	order := &domain.Order{
		ID:               uuidToString(o.ID),
		Source:           domain.SourceLocal,
		ShopifyID:        ptrString(o.ShopifyID),
		OrderID:          o.OrderID,
		OrderDate:        pgdateToTimePtr(o.OrderDate),
		AWB:              o.Awb,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		CustomerEmail:    o.CustomerEmail,
		CustomerAddress:  o.CustomerAddress,
		City:             o.City,
		State:            o.State,
		Pincode:          o.Pincode,
		DeadWeight:       numericToFloat64Ptr(o.DeadWeight),
		Length:           numericToFloat64Ptr(o.Length),
		Breadth:          numericToFloat64Ptr(o.Breadth),
		Height:           numericToFloat64Ptr(o.Height),
		VolumetricWeight: numericToFloat64Ptr(o.VolumetricWeight),
		Amount:           numericToFloat64Ptr(o.Amount),
		PaymentMode:      domain.PaymentMode(o.PaymentMode),
		CGST:             numericToFloat64Ptr(o.Cgst),
		SGST:             numericToFloat64Ptr(o.Sgst),
		IGST:             numericToFloat64Ptr(o.Igst),
		HSNCode:          o.HsnCode,
		GSTINNumber:      o.GstinNumber,
		InvoiceReference: o.InvoiceReference,
		Category:         o.Category,
		UnitPrice:        numericToFloat64Ptr(o.UnitPrice),
		VendorName:       o.VendorName,
		PickupAddress:    o.PickupAddress,
		PickupCity:       o.PickupCity,
		PickupState:      o.PickupState,
		PickupPincode:    o.PickupPincode,
		ReturnLabel1:     o.ReturnLabel1,
		ReturnLabel2:     o.ReturnLabel2,
		ServiceTier:      o.ServiceTier,
		Tag:              o.Tag,
		CreatedAt:        pgtimeToTime(o.CreatedAt),
		UpdatedAt:        pgtimeToTime(o.UpdatedAt),
	}

	status, err := domain.ParseOrderStatus(o.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", order.ID, err)
	}
	order.Status = status

	order.Products = []domain.Product{}
	if len(o.Products) > 0 {
		if err := json.Unmarshal(o.Products, &order.Products); err != nil {
			return nil, fmt.Errorf("order %s: decode products: %w", order.ID, err)
		}
	}
	if len(o.ReturnTracking) > 0 {
		if err := json.Unmarshal(o.ReturnTracking, &order.ReturnTracking); err != nil {
			return nil, fmt.Errorf("order %s: decode return tracking: %w", order.ID, err)
		}
	}
	if order.ReturnTracking.History == nil {
		order.ReturnTracking.History = []domain.TrackingEvent{}
	}
	return order, nil
}

// orderColumns is the shared column set of CreateOrderParams and
// UpdateOrderParams.
func orderColumns(o *domain.Order) (sqlc.CreateOrderParams, error) {
	products := o.Products
	if products == nil {
		products = []domain.Product{}
	}
	productsJSON, err := json.Marshal(products)
	if err != nil {
		return sqlc.CreateOrderParams{}, fmt.Errorf("encode products: %w", err)
	}
	trackingJSON, err := json.Marshal(o.ReturnTracking)
	if err != nil {
		return sqlc.CreateOrderParams{}, fmt.Errorf("encode return tracking: %w", err)
	}

	status := o.Status
	if status == "" {
		status = domain.OrderStatusNew
	}

	return sqlc.CreateOrderParams{
		ID:               stringToUUID(o.ID),
		ShopifyID:        strPtr(o.ShopifyID),
		OrderID:          o.OrderID,
		OrderDate:        timePtrToPgdate(o.OrderDate),
		Awb:              o.AWB,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		CustomerEmail:    o.CustomerEmail,
		CustomerAddress:  o.CustomerAddress,
		City:             o.City,
		State:            o.State,
		Pincode:          o.Pincode,
		Products:         productsJSON,
		DeadWeight:       float64PtrToNumeric(o.DeadWeight),
		Length:           float64PtrToNumeric(o.Length),
		Breadth:          float64PtrToNumeric(o.Breadth),
		Height:           float64PtrToNumeric(o.Height),
		VolumetricWeight: float64PtrToNumeric(o.VolumetricWeight),
		Amount:           float64PtrToNumeric(o.Amount),
		PaymentMode:      string(o.PaymentMode),
		Cgst:             float64PtrToNumeric(o.CGST),
		Sgst:             float64PtrToNumeric(o.SGST),
		Igst:             float64PtrToNumeric(o.IGST),
		HsnCode:          o.HSNCode,
		GstinNumber:      o.GSTINNumber,
		InvoiceReference: o.InvoiceReference,
		Category:         o.Category,
		UnitPrice:        float64PtrToNumeric(o.UnitPrice),
		VendorName:       o.VendorName,
		PickupAddress:    o.PickupAddress,
		PickupCity:       o.PickupCity,
		PickupState:      o.PickupState,
		PickupPincode:    o.PickupPincode,
		ReturnLabel1:     o.ReturnLabel1,
		ReturnLabel2:     o.ReturnLabel2,
		ServiceTier:      o.ServiceTier,
		Tag:              o.Tag,
		Status:           string(status),
		ReturnTracking:   trackingJSON,
	}, nil
}

// --- Queries ---

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	rows, err := GetQueriesFromContext(ctx, r.queries).ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(rows))
	for _, row := range rows {
		o, err := sqlcOrderToDomain(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	uid := stringToUUID(id)
	if !uid.Valid {
		return nil, domain.ErrOrderNotFound
	}
	row, err := GetQueriesFromContext(ctx, r.queries).GetOrderByID(ctx, uid)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return sqlcOrderToDomain(row)
}

func (r *orderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	row, err := GetQueriesFromContext(ctx, r.queries).GetOrderByOrderID(ctx, orderID)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return sqlcOrderToDomain(row)
}

func (r *orderRepository) ExistingOrderIDs(ctx context.Context, orderIDs []string) ([]string, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	return GetQueriesFromContext(ctx, r.queries).ListExistingOrderIDs(ctx, orderIDs)
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	params, err := orderColumns(order)
	if err != nil {
		return err
	}
	if !params.ID.Valid {
		params.ID = stringToUUID(uuid.NewString())
	}

	created, err := GetQueriesFromContext(ctx, r.queries).CreateOrder(ctx, params)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateOrdersError{OrderIDs: []string{order.OrderID}}
		}
		return err
	}

	order.ID = uuidToString(created.ID)
	order.Source = domain.SourceLocal
	order.CreatedAt = pgtimeToTime(created.CreatedAt)
	order.UpdatedAt = pgtimeToTime(created.UpdatedAt)
	return nil
}

func (r *orderRepository) Update(ctx context.Context, order *domain.Order) error {
	params, err := orderColumns(order)
	if err != nil {
		return err
	}
	if !params.ID.Valid {
		return domain.ErrOrderNotFound
	}

	updated, err := GetQueriesFromContext(ctx, r.queries).UpdateOrder(ctx, sqlc.UpdateOrderParams(params))
	if err != nil {
		if isNoRows(err) {
			return domain.ErrOrderNotFound
		}
		if isUniqueViolation(err) {
			return &domain.DuplicateOrdersError{OrderIDs: []string{order.OrderID}}
		}
		return err
	}

	order.UpdatedAt = pgtimeToTime(updated.UpdatedAt)
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	uid := stringToUUID(id)
	if !uid.Valid {
		return domain.ErrOrderNotFound
	}
	n, err := GetQueriesFromContext(ctx, r.queries).DeleteOrder(ctx, uid)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
