package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstinvoice/internal/domain"
)

// MockOrderRepo is a mock implementation of port.OrderRepository.
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, entityID, orderID uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, entityID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) ListByEntity(ctx context.Context, entityID uuid.UUID, status domain.OrderStatus, offset, limit int) ([]domain.Order, int, error) {
	args := m.Called(ctx, entityID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderRepo) ClaimPending(ctx context.Context, limit int, staleBefore time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, limit, staleBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepo) MarkInvoiced(ctx context.Context, orderID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, orderID, invoiceID)
	return args.Error(0)
}

func (m *MockOrderRepo) MarkFailed(ctx context.Context, orderID uuid.UUID, reason string) error {
	args := m.Called(ctx, orderID, reason)
	return args.Error(0)
}
