package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/port"
	"gstinvoice/internal/service"
)

// MockEntityService is a mock implementation of service.EntityService.
type MockEntityService struct {
	mock.Mock
}

func (m *MockEntityService) Create(ctx context.Context, input *service.EntityInput) (*domain.Entity, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Entity), args.Int(1), args.Error(2)
}

func (m *MockEntityService) Update(ctx context.Context, id uuid.UUID, input *service.EntityInput) (*domain.Entity, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockEntityService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportOrders(ctx context.Context, input *service.ImportInput) (*domain.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

func (m *MockImportService) ImportProducts(ctx context.Context, input *service.ImportInput) (*domain.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}

func (m *MockImportService) ListOrders(ctx context.Context, entityID uuid.UUID, status domain.OrderStatus, offset, limit int) ([]domain.Order, int, error) {
	args := m.Called(ctx, entityID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockImportService) ListProducts(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]domain.Product, int, error) {
	args := m.Called(ctx, entityID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) detail(args mock.Arguments) (*service.InvoiceDetail, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceDetail), args.Error(1)
}

func (m *MockInvoiceService) Preview(ctx context.Context, input *service.PreviewInput) (*service.InvoiceDetail, error) {
	return m.detail(m.Called(ctx, input))
}

func (m *MockInvoiceService) CreateManual(ctx context.Context, input *service.InvoiceInput) (*service.InvoiceDetail, error) {
	return m.detail(m.Called(ctx, input))
}

func (m *MockInvoiceService) CreateFromOrder(ctx context.Context, entityID, orderID uuid.UUID) (*service.InvoiceDetail, error) {
	return m.detail(m.Called(ctx, entityID, orderID))
}

func (m *MockInvoiceService) DraftOrder(ctx context.Context, order *domain.Order) (*service.InvoiceDetail, error) {
	return m.detail(m.Called(ctx, order))
}

func (m *MockInvoiceService) UpdateDraft(ctx context.Context, invoiceID uuid.UUID, input *service.InvoiceInput) (*service.InvoiceDetail, error) {
	return m.detail(m.Called(ctx, invoiceID, input))
}

func (m *MockInvoiceService) GetByID(ctx context.Context, entityID, invoiceID uuid.UUID) (*service.InvoiceDetail, error) {
	return m.detail(m.Called(ctx, entityID, invoiceID))
}

func (m *MockInvoiceService) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) Finalize(ctx context.Context, entityID, invoiceID uuid.UUID) (*service.InvoiceDetail, error) {
	return m.detail(m.Called(ctx, entityID, invoiceID))
}

func (m *MockInvoiceService) RenderHTML(ctx context.Context, entityID, invoiceID uuid.UUID) (string, error) {
	args := m.Called(ctx, entityID, invoiceID)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceService) RenderPDF(ctx context.Context, entityID, invoiceID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, entityID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockInvoiceService) DownloadURL(ctx context.Context, entityID, invoiceID uuid.UUID) (string, error) {
	args := m.Called(ctx, entityID, invoiceID)
	return args.String(0), args.Error(1)
}

// Export writes the first Return value (a string) to w as the file body.
func (m *MockInvoiceService) Export(ctx context.Context, input *service.ExportInput, w io.Writer) (string, error) {
	args := m.Called(ctx, input, w)
	if body, ok := args.Get(0).(string); ok && body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.String(1), args.Error(2)
}
