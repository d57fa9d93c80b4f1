package usecase

import (
	"context"
	"strings"
	"testing"

	"orderdesk-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importCSV = "\xef\xbb\xbforderId,orderDate,customerName,customerPhone,amount,paymentMode,productName,quantity\n" +
	"#3001,2024-03-05,Asha Rao,9876543210,1499.00,COD,Kurta,2\n" +
	"#3001,,,,,,Dupatta,1\n" +
	"3002,2024-03-06,Vikram Singh,9123456780,,Prepaid,Saree,1\n" +
	",,,,,,,\n"

func newImportHarness(local ...*domain.Order) (*harness, *ImportUsecase, *fakeTx) {
	h := newHarness(local...)
	tx := &fakeTx{}
	return h, NewImportUsecase(h.repo, tx, h.selections, h.storage), tx
}

func TestImportCSV(t *testing.T) {
	h, imports, tx := newImportHarness()
	h.selections.SetOrderChecked(h.session, "x", true)

	res, err := imports.ImportCSV(context.Background(), strings.NewReader(importCSV), "orders.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.SavedOrders, 2)
	assert.Equal(t, 1, tx.calls)

	first := res.SavedOrders[0]
	assert.Equal(t, "3001", first.OrderID)
	require.Len(t, first.Products, 2)
	assert.Equal(t, domain.Product{ProductName: "Dupatta", Quantity: 1}, first.Products[1])
	require.NotNil(t, first.Amount)
	assert.InDelta(t, 1499.0, *first.Amount, 0.001)
	assert.Equal(t, domain.PaymentModeCOD, first.PaymentMode)
	assert.Equal(t, domain.OrderStatusNew, first.Status)

	assert.Equal(t, domain.PaymentModePrepaid, res.SavedOrders[1].PaymentMode)
	assert.Nil(t, res.SavedOrders[1].Amount)

	assert.Len(t, h.repo.orders, 2)
	assert.Equal(t, []string{"imports"}, h.storage.folders)
	assert.NotEmpty(t, res.ArchiveURL)
	assert.Empty(t, h.selections.Get(h.session).CheckedOrders, "import resets selections")
}

func TestImportCSVRejectsStoreDuplicates(t *testing.T) {
	h, imports, _ := newImportHarness(localOrder("3002", 1))

	_, err := imports.ImportCSV(context.Background(), strings.NewReader(importCSV), "orders.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateOrder)
	assert.Contains(t, strings.ToLower(err.Error()), "duplicate")
	assert.Contains(t, err.Error(), "3002")
	assert.Len(t, h.repo.orders, 1)
	assert.Empty(t, h.storage.folders)
}

func TestImportCSVRejectsFileDuplicates(t *testing.T) {
	h, imports, _ := newImportHarness()
	csv := "orderId,orderDate,customerName,customerPhone,productName,quantity\n" +
		"3001,2024-03-05,Asha,98,Kurta,1\n" +
		"3002,2024-03-05,Vikram,91,Saree,1\n" +
		"3001,2024-03-05,Asha,98,Dupatta,1\n"

	_, err := imports.ImportCSV(context.Background(), strings.NewReader(csv), "orders.csv")
	var dup *domain.DuplicateOrdersError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, []string{"3001"}, dup.OrderIDs)
	assert.Empty(t, h.repo.orders)
}

func TestImportCSVValidation(t *testing.T) {
	h, imports, _ := newImportHarness()
	csv := "orderId,orderDate,customerName,customerPhone,amount\n" +
		"3001,yesterday,Asha,98,abc\n"

	_, err := imports.ImportCSV(context.Background(), strings.NewReader(csv), "orders.csv")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be a date (YYYY-MM-DD)", ve.Fields["3001.orderDate"])
	assert.Equal(t, "must be a number", ve.Fields["3001.amount"])
	assert.Empty(t, h.repo.orders)
}

func TestImportCSVRejectsNonFiniteNumbers(t *testing.T) {
	h, imports, _ := newImportHarness()
	csv := "orderId,orderDate,customerName,customerPhone,amount,deadWeight\n" +
		"3001,2024-03-05,Asha,98,NaN,Inf\n"

	_, err := imports.ImportCSV(context.Background(), strings.NewReader(csv), "orders.csv")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must be a number", ve.Fields["3001.amount"])
	assert.Equal(t, "must be a number", ve.Fields["3001.deadWeight"])
	assert.Empty(t, h.repo.orders)
}

func TestImportCSVBadFiles(t *testing.T) {
	_, imports, _ := newImportHarness()

	_, err := imports.ImportCSV(context.Background(), strings.NewReader(""), "empty.csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = imports.ImportCSV(context.Background(), strings.NewReader("customerName\nAsha\n"), "nohdr.csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = imports.ImportCSV(context.Background(), strings.NewReader("orderId\n"), "header-only.csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportCSVWithoutStorage(t *testing.T) {
	h := newHarness()
	imports := NewImportUsecase(h.repo, &fakeTx{}, h.selections, nil)

	res, err := imports.ImportCSV(context.Background(), strings.NewReader(importCSV), "orders.csv")
	require.NoError(t, err)
	assert.Empty(t, res.ArchiveURL)
	assert.Equal(t, 2, res.Count)
}
