package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gstinvoice/internal/config"
	"gstinvoice/internal/domain"
	"gstinvoice/internal/service"
	"gstinvoice/mocks"
)

const ordersCSV = `Name,Email,Created at,Lineitem quantity,Lineitem name,Lineitem price,Lineitem sku,Billing Name,Billing Province,HSN Code
#1001,asha@example.com,2024-04-02,2,Cotton Kurta,500,KURTA-M,Asha Rao,KA,6205
#1002,ravi@example.com,2024-04-03,3,Notebook,100,NB-A5,Ravi Kumar,West Bengal,4820
`

type importFixture struct {
	entities *mocks.MockEntityRepo
	products *mocks.MockProductRepo
	orders   *mocks.MockOrderRepo
	svc      service.ImportService
	entityID uuid.UUID
}

func newImportFixture(maxMB int64) *importFixture {
	f := &importFixture{
		entities: new(mocks.MockEntityRepo),
		products: new(mocks.MockProductRepo),
		orders:   new(mocks.MockOrderRepo),
		entityID: uuid.New(),
	}
	f.svc = service.NewImportService(f.entities, f.products, f.orders,
		config.InvoiceConfig{DefaultGSTRate: decimal.NewFromInt(18), DefaultUnit: "NOS", Currency: "INR"},
		config.ImportConfig{MaxRows: 100, MaxFileSizeMB: maxMB},
		zap.NewNop())
	f.entities.On("GetByID", mock.Anything, f.entityID).Return(&domain.Entity{ID: f.entityID, StateCode: "29"}, nil).Maybe()
	return f
}

func (f *importFixture) input(name, body string) *service.ImportInput {
	return &service.ImportInput{EntityID: f.entityID, FileName: name, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestImportService_ImportOrders(t *testing.T) {
	f := newImportFixture(10)

	f.products.On("GetBySKU", mock.Anything, f.entityID, "KURTA-M").
		Return(&domain.Product{SKU: "KURTA-M", GSTRate: decimal.NewNullDecimal(decimal.NewFromInt(5))}, nil).Once()
	f.products.On("GetBySKU", mock.Anything, f.entityID, "NB-A5").Return(nil, domain.ErrNotFound).Once()

	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool { return o.OrderNumber == "#1001" })).
		Return(true, nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool { return o.OrderNumber == "#1002" })).
		Return(false, nil)

	result, err := f.svc.ImportOrders(context.Background(), f.input("orders_export.csv", ordersCSV))
	require.NoError(t, err)

	assert.Equal(t, domain.ImportKindOrders, result.Kind)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Errors)
	f.orders.AssertExpectations(t)
	f.products.AssertExpectations(t)
}

func TestImportService_ImportOrders_CatalogueRateApplied(t *testing.T) {
	f := newImportFixture(10)
	f.products.On("GetBySKU", mock.Anything, f.entityID, mock.Anything).
		Return(&domain.Product{GSTRate: decimal.NewNullDecimal(decimal.NewFromInt(12))}, nil)

	var stored []*domain.Order
	f.orders.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = append(stored, args.Get(1).(*domain.Order))
	}).Return(true, nil)

	_, err := f.svc.ImportOrders(context.Background(), f.input("orders.csv", ordersCSV))
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "12", stored[1].Items[0].GSTRate.Decimal.String())
}

func TestImportService_RejectsBadUploads(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		maxMB   int64
		wantErr error
	}{
		{"unsupported extension", "orders.pdf", ordersCSV, 10, domain.ErrUnsupportedFileType},
		{"empty file", "orders.csv", "", 10, domain.ErrInvalidImportFile},
		{"missing columns", "orders.csv", "Name,Email\n#1,a@b.c\n", 10, domain.ErrInvalidImportFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImportFixture(tt.maxMB)
			_, err := f.svc.ImportOrders(context.Background(), f.input(tt.file, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
			f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestImportService_FileTooLarge(t *testing.T) {
	f := newImportFixture(1)
	in := f.input("orders.csv", ordersCSV)
	in.Size = 2 << 20
	_, err := f.svc.ImportOrders(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestImportService_UnknownEntity(t *testing.T) {
	f := newImportFixture(10)
	other := uuid.New()
	f.entities.On("GetByID", mock.Anything, other).Return(nil, domain.ErrEntityNotFound)

	in := f.input("orders.csv", ordersCSV)
	in.EntityID = other
	_, err := f.svc.ImportOrders(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestImportService_ImportProducts(t *testing.T) {
	f := newImportFixture(10)
	data := "Handle,Title,Variant SKU,Variant Price,HSN Code,GST Rate\n" +
		"cotton-kurta,Cotton Kurta,KURTA-S,499,6205,5\n" +
		"cotton-kurta,,KURTA-M,549,6205,5\n" +
		"mug,Mug,,250,,\n"

	f.products.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil).Twice()

	result, err := f.svc.ImportProducts(context.Background(), f.input("products.csv", data))
	require.NoError(t, err)
	assert.Equal(t, domain.ImportKindProducts, result.Kind)
	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 1)
	f.products.AssertExpectations(t)
}
