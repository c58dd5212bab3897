package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/gst"
	"gstinvoice/internal/port"
)

const defaultInvoicePrefix = "INV"

// EntityInput is the DTO for creating or updating a seller entity. StateCode
// accepts a GST numeric code, a province code or a state name.
type EntityInput struct {
	Name          string
	GSTIN         string
	Address       string
	StateCode     string
	Email         string
	Phone         string
	BankName      string
	AccountNumber string
	IFSCCode      string
	InvoicePrefix string
}

// EntityService defines the seller entity management contract.
type EntityService interface {
	Create(ctx context.Context, input *EntityInput) (*domain.Entity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error)
	List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error)
	Update(ctx context.Context, id uuid.UUID, input *EntityInput) (*domain.Entity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entityService struct {
	entityRepo port.EntityRepository
	log        *zap.Logger
}

// NewEntityService creates a new EntityService implementation.
func NewEntityService(entityRepo port.EntityRepository, log *zap.Logger) EntityService {
	return &entityService{entityRepo: entityRepo, log: log.Named("entityService")}
}

func (s *entityService) Create(ctx context.Context, input *EntityInput) (*domain.Entity, error) {
	entity := &domain.Entity{NextInvoiceSeq: 1}
	if err := applyEntityInput(entity, input); err != nil {
		return nil, err
	}
	if err := s.entityRepo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("creating entity: %w", err)
	}
	s.log.Info("entity created", zap.String("entity_id", entity.ID.String()), zap.String("state_code", entity.StateCode))
	return entity, nil
}

func (s *entityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	return s.entityRepo.GetByID(ctx, id)
}

func (s *entityService) List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error) {
	return s.entityRepo.List(ctx, offset, limit)
}

func (s *entityService) Update(ctx context.Context, id uuid.UUID, input *EntityInput) (*domain.Entity, error) {
	entity, err := s.entityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEntityInput(entity, input); err != nil {
		return nil, err
	}
	if err := s.entityRepo.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *entityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.entityRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("entity deleted", zap.String("entity_id", id.String()))
	return nil
}

// applyEntityInput copies input onto entity, normalizing the state to its
// GST numeric code. An empty state code is allowed and leaves jurisdiction
// unresolved on invoices.
func applyEntityInput(entity *domain.Entity, input *EntityInput) error {
	entity.Name = strings.TrimSpace(input.Name)
	entity.GSTIN = strings.ToUpper(strings.TrimSpace(input.GSTIN))
	entity.Address = strings.TrimSpace(input.Address)
	entity.Email = strings.TrimSpace(input.Email)
	entity.Phone = strings.TrimSpace(input.Phone)
	entity.BankName = strings.TrimSpace(input.BankName)
	entity.AccountNumber = strings.TrimSpace(input.AccountNumber)
	entity.IFSCCode = strings.ToUpper(strings.TrimSpace(input.IFSCCode))

	entity.State, entity.StateCode = "", ""
	if code := strings.TrimSpace(input.StateCode); code != "" {
		st, ok := gst.LookupState(code)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrInvalidStateCode, code)
		}
		entity.State, entity.StateCode = st.Name, st.GSTCode
	}

	entity.InvoicePrefix = strings.TrimSpace(input.InvoicePrefix)
	if entity.InvoicePrefix == "" {
		entity.InvoicePrefix = defaultInvoicePrefix
	}
	return nil
}
