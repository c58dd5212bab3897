package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/service"
	"gstinvoice/mocks"
)

func TestEntityService_Create_NormalizesState(t *testing.T) {
	repo := new(mocks.MockEntityRepo)
	svc := service.NewEntityService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *domain.Entity) bool {
		return e.StateCode == "29" && e.State == "Karnataka" && e.GSTIN == "29ABCDE1234F1Z5" &&
			e.InvoicePrefix == "INV" && e.NextInvoiceSeq == 1
	})).Return(nil)

	entity, err := svc.Create(context.Background(), &service.EntityInput{
		Name:      " Acme Textiles ",
		GSTIN:     "29abcde1234f1z5",
		StateCode: "KA",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Textiles", entity.Name)
	repo.AssertExpectations(t)
}

func TestEntityService_Create_AcceptsNameAndNumericCode(t *testing.T) {
	for _, code := range []string{"Maharashtra", "27", "mh"} {
		repo := new(mocks.MockEntityRepo)
		svc := service.NewEntityService(repo, zap.NewNop())
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		entity, err := svc.Create(context.Background(), &service.EntityInput{Name: "X", StateCode: code})
		require.NoError(t, err, code)
		assert.Equal(t, "27", entity.StateCode, code)
	}
}

func TestEntityService_Create_RejectsUnknownState(t *testing.T) {
	repo := new(mocks.MockEntityRepo)
	svc := service.NewEntityService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), &service.EntityInput{Name: "X", StateCode: "Atlantis"})
	assert.True(t, errors.Is(err, domain.ErrInvalidStateCode))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEntityService_Update(t *testing.T) {
	repo := new(mocks.MockEntityRepo)
	svc := service.NewEntityService(repo, zap.NewNop())

	id := uuid.New()
	existing := &domain.Entity{ID: id, Name: "Old", StateCode: "29", InvoicePrefix: "ACM", NextInvoiceSeq: 42}
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	entity, err := svc.Update(context.Background(), id, &service.EntityInput{Name: "New", StateCode: "07", InvoicePrefix: "ACM"})
	require.NoError(t, err)
	assert.Equal(t, "New", entity.Name)
	assert.Equal(t, "07", entity.StateCode)
	assert.Equal(t, "Delhi", entity.State)
	assert.Equal(t, int64(42), entity.NextInvoiceSeq)
}

func TestEntityService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockEntityRepo)
	svc := service.NewEntityService(repo, zap.NewNop())

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrEntityNotFound)

	_, err := svc.Update(context.Background(), id, &service.EntityInput{Name: "New"})
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestEntityService_Delete_InUse(t *testing.T) {
	repo := new(mocks.MockEntityRepo)
	svc := service.NewEntityService(repo, zap.NewNop())

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(domain.ErrEntityInUse)
	assert.ErrorIs(t, svc.Delete(context.Background(), id), domain.ErrEntityInUse)
}
