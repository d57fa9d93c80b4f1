package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"orderdesk-backend/internal/domain"
	"orderdesk-backend/internal/infrastructure/metrics"
	"orderdesk-backend/pkg/logger"
	"orderdesk-backend/pkg/storage"
	"orderdesk-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// Columns that never come from a CSV cell as-is.
var skippedImportColumns = map[string]bool{
	"products":       true,
	"returnTracking": true,
	"productName":    true,
	"quantity":       true,
}

type ImportUsecase struct {
	orderRepo  domain.OrderRepository
	txManager  domain.TransactionManager
	selections *SelectionUsecase
	storage    domain.ObjectStorage
}

// NewImportUsecase wires the CSV import. objectStorage may be nil, in which
// case uploaded files are not archived.
func NewImportUsecase(repo domain.OrderRepository, txManager domain.TransactionManager, selections *SelectionUsecase, objectStorage domain.ObjectStorage) *ImportUsecase {
	return &ImportUsecase{
		orderRepo:  repo,
		txManager:  txManager,
		selections: selections,
		storage:    objectStorage,
	}
}

// ImportCSV saves every order in the file or none of them. Consecutive rows
// with the same orderId form one order, one product per row.
func (u *ImportUsecase) ImportCSV(ctx context.Context, r io.Reader, filename string) (*domain.ImportResult, error) {
	log := logger.WithContext(ctx)

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	forms, err := parseOrderCSV(raw)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(forms))
	fields := map[string]string{}
	for _, f := range forms {
		key := f.OrderID
		o, err := f.Normalize()
		if err != nil {
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				return nil, err
			}
			for field, msg := range ve.Fields {
				fields[key+"."+field] = msg
			}
			continue
		}
		if o.ReturnTracking.History == nil {
			o.ReturnTracking.History = []domain.TrackingEvent{}
		}
		orders = append(orders, o)
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	numbers := make([]string, len(orders))
	for i, o := range orders {
		numbers[i] = o.OrderID
	}

	err = u.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := u.orderRepo.ExistingOrderIDs(ctx, numbers)
		if err != nil {
			return fmt.Errorf("check existing orders: %w", err)
		}
		if len(existing) > 0 {
			return &domain.DuplicateOrdersError{OrderIDs: existing}
		}
		for _, o := range orders {
			if err := u.orderRepo.Create(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("CSV import rejected")
		return nil, err
	}

	metrics.OrdersImportedTotal.Add(float64(len(orders)))
	u.selections.Reset(ctx)

	res := &domain.ImportResult{SavedOrders: orders, Count: len(orders)}
	if u.storage != nil {
		url, err := u.storage.Put(ctx, storage.FolderImports, raw, "text/csv")
		if err != nil {
			metrics.CountError("csv_archive")
			log.Warn().Err(err).Str("file", filename).Msg("Failed to archive imported CSV")
		} else {
			res.ArchiveURL = url
		}
	}

	log.Info().Str("file", filename).Int("orders", len(orders)).Msg("CSV imported")
	return res, nil
}

// parseOrderCSV turns a header-driven CSV into one form per order. Columns
// are named after the order's JSON fields; productName and quantity describe
// the row's product.
func parseOrderCSV(raw []byte) ([]*domain.OrderForm, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &domain.ValidationError{Fields: map[string]string{"file": "is empty"}}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	columns := make([]string, len(header))
	hasOrderID := false
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
		if columns[i] == "orderId" {
			hasOrderID = true
		}
	}
	if !hasOrderID {
		return nil, &domain.ValidationError{Fields: map[string]string{"orderId": "column is missing"}}
	}

	var (
		forms    []*domain.OrderForm
		products [][]map[string]string
		seen     = map[string]bool{}
		dupes    []string
		current  string
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}

		row := make(map[string]string, len(columns))
		blank := true
		for i, col := range columns {
			if i < len(record) && col != "" {
				row[col] = strings.TrimSpace(record[i])
				if row[col] != "" {
					blank = false
				}
			}
		}
		if blank {
			continue
		}

		orderID := utils.NormalizeOrderNumber(row["orderId"])
		row["orderId"] = orderID
		product := map[string]string{"productName": row["productName"], "quantity": row["quantity"]}

		if orderID != "" && orderID == current {
			products[len(products)-1] = append(products[len(products)-1], product)
			continue
		}
		if orderID != "" && seen[orderID] {
			dupes = append(dupes, orderID)
			continue
		}
		seen[orderID] = true
		current = orderID

		form, err := formFromRow(row)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
		products = append(products, []map[string]string{product})
	}
	if len(dupes) > 0 {
		return nil, &domain.DuplicateOrdersError{OrderIDs: dupes}
	}
	if len(forms) == 0 {
		return nil, &domain.ValidationError{Fields: map[string]string{"file": "has no orders"}}
	}

	for i, f := range forms {
		for _, p := range products[i] {
			if p["productName"] == "" {
				continue
			}
			f.Products = append(f.Products, domain.FormProduct{
				ProductName: p["productName"],
				Quantity:    domain.ParseFormNumber(p["quantity"]),
			})
		}
	}
	return forms, nil
}

// formFromRow decodes a row through the form's own JSON rules, so numeric
// cells get the same lenient parsing as the create endpoint.
func formFromRow(row map[string]string) (*domain.OrderForm, error) {
	values := make(map[string]string, len(row))
	for k, v := range row {
		if skippedImportColumns[k] || v == "" {
			continue
		}
		values[k] = v
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	var form domain.OrderForm
	if err := json.Unmarshal(encoded, &form); err != nil {
		return nil, fmt.Errorf("%w: row %s: %v", domain.ErrInvalidInput, row["orderId"], err)
	}
	return &form, nil
}
