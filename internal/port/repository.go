package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gstinvoice/internal/domain"
)

// EntityRepository defines the contract for seller entity persistence.
type EntityRepository interface {
	Create(ctx context.Context, entity *domain.Entity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error)
	List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error)
	Update(ctx context.Context, entity *domain.Entity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the contract for catalogue persistence.
type ProductRepository interface {
	// Upsert inserts the product or updates the existing row with the same
	// entity and SKU.
	Upsert(ctx context.Context, product *domain.Product) error
	GetBySKU(ctx context.Context, entityID uuid.UUID, sku string) (*domain.Product, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]domain.Product, int, error)
}

// OrderRepository defines the contract for imported order persistence.
type OrderRepository interface {
	// Create stores the order with its items. An order number already
	// imported for the entity is skipped and reported via created=false.
	Create(ctx context.Context, order *domain.Order) (created bool, err error)
	GetByID(ctx context.Context, entityID, orderID uuid.UUID) (*domain.Order, error)
	ListByEntity(ctx context.Context, entityID uuid.UUID, status domain.OrderStatus, offset, limit int) ([]domain.Order, int, error)
	// ClaimPending marks up to limit orders as drafting and returns them with
	// their items. Pending orders qualify, as do drafting orders last touched
	// before staleBefore, whose worker is presumed gone. Rows locked by
	// another worker are skipped. Nothing is claimed if loading items fails.
	ClaimPending(ctx context.Context, limit int, staleBefore time.Time) ([]domain.Order, error)
	MarkInvoiced(ctx context.Context, orderID, invoiceID uuid.UUID) error
	MarkFailed(ctx context.Context, orderID uuid.UUID, reason string) error
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	EntityID uuid.UUID
	Status   domain.InvoiceStatus
	Offset   int
	Limit    int
}

// InvoiceRepository defines the contract for invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, entityID, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetByOrderID(ctx context.Context, entityID, orderID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, int, error)
	// UpdateDraft replaces the stored inputs of a draft invoice. Final
	// invoices are left untouched and ErrInvoiceFinalized is returned.
	UpdateDraft(ctx context.Context, invoice *domain.Invoice) error
	// Finalize reserves the entity's next sequence number, formats it with
	// assign and marks the draft final, all in one transaction. A failed
	// assign or update releases the sequence number. If the stored draft was
	// updated after invoice was read, ErrInvoiceModified is returned and
	// nothing changes.
	Finalize(ctx context.Context, invoice *domain.Invoice, assign NumberAssigner) error
	SetPDFKey(ctx context.Context, entityID, invoiceID uuid.UUID, key string) error
}

// NumberAssigner turns a reserved sequence number into an invoice number.
type NumberAssigner func(seq int64) (string, error)
