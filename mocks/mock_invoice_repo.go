package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/port"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
// Finalize invokes the assigner with the sequence given to Return and
// applies the result, so callers see a finalized invoice.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, entityID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, entityID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) GetByOrderID(ctx context.Context, entityID, orderID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, entityID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) UpdateDraft(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Finalize(ctx context.Context, invoice *domain.Invoice, assign port.NumberAssigner) error {
	args := m.Called(ctx, invoice)
	if err := args.Error(1); err != nil {
		return err
	}
	number, err := assign(args.Get(0).(int64))
	if err != nil {
		return err
	}
	invoice.InvoiceNumber = &number
	invoice.Status = domain.InvoiceStatusFinal
	return nil
}

func (m *MockInvoiceRepo) SetPDFKey(ctx context.Context, entityID, invoiceID uuid.UUID, key string) error {
	args := m.Called(ctx, entityID, invoiceID, key)
	return args.Error(0)
}
