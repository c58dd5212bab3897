package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	inv.ID = uuid.New()
	now := dbNow()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}

	query := `
		INSERT INTO invoices (id, entity_id, order_id, invoice_number, invoice_date, status, seller, buyer,
			items, document_discount, grand_total, notes, pdf_key, finalized_at, created_at, updated_at)
		VALUES (:id, :entity_id, :order_id, :invoice_number, :invoice_date, :status, :seller, :buyer,
			:items, :document_discount, :grand_total, :notes, :pdf_key, :finalized_at, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		if isUniqueViolation(err, "idx_invoices_order") {
			return domain.ErrOrderAlreadyInvoiced
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, entityID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE entity_id = $1 AND id = $2", entityID, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) GetByOrderID(ctx context.Context, entityID, orderID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE entity_id = $1 AND order_id = $2", entityID, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByOrderID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) List(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM invoices WHERE entity_id = $1 AND ($2::text = '' OR status = $2::text)",
		filter.EntityID, string(filter.Status))
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices WHERE entity_id = $1 AND ($2::text = '' OR status = $2::text)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		filter.EntityID, string(filter.Status), filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdateDraft(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = dbNow()
	query := `
		UPDATE invoices SET seller = :seller, buyer = :buyer, items = :items,
			document_discount = :document_discount, grand_total = :grand_total, notes = :notes,
			invoice_date = :invoice_date, updated_at = :updated_at
		WHERE entity_id = :entity_id AND id = :id AND status = 'draft'`
	result, err := r.db.NamedExecContext(ctx, query, inv)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateDraft: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return r.missOrFinal(ctx, inv.EntityID, inv.ID)
	}
	return nil
}

func (r *invoiceRepo) Finalize(ctx context.Context, inv *domain.Invoice, assign port.NumberAssigner) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked struct {
			Status    domain.InvoiceStatus `db:"status"`
			UpdatedAt time.Time            `db:"updated_at"`
		}
		err := tx.GetContext(ctx, &locked,
			"SELECT status, updated_at FROM invoices WHERE entity_id = $1 AND id = $2 FOR UPDATE", inv.EntityID, inv.ID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrInvoiceNotFound
			}
			return fmt.Errorf("invoiceRepo.Finalize lock: %w", err)
		}
		if locked.Status != domain.InvoiceStatusDraft {
			return domain.ErrInvoiceFinalized
		}
		// The caller audited inv; a newer row means it audited stale inputs.
		if !locked.UpdatedAt.Truncate(time.Microsecond).Equal(inv.UpdatedAt.Truncate(time.Microsecond)) {
			return domain.ErrInvoiceModified
		}

		var seq int64
		err = tx.GetContext(ctx, &seq,
			`UPDATE entities SET next_invoice_seq = next_invoice_seq + 1, updated_at = NOW()
			WHERE id = $1 RETURNING next_invoice_seq - 1`, inv.EntityID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrEntityNotFound
			}
			return fmt.Errorf("invoiceRepo.Finalize sequence: %w", err)
		}

		number, err := assign(seq)
		if err != nil {
			return err
		}

		now := dbNow()
		inv.InvoiceNumber = &number
		if inv.InvoiceDate == nil {
			inv.InvoiceDate = &now
		}
		inv.FinalizedAt = &now
		inv.UpdatedAt = now
		inv.Status = domain.InvoiceStatusFinal

		query := `
			UPDATE invoices SET status = :status, invoice_number = :invoice_number, invoice_date = :invoice_date,
				grand_total = :grand_total, finalized_at = :finalized_at, updated_at = :updated_at
			WHERE entity_id = :entity_id AND id = :id`
		if _, err := tx.NamedExecContext(ctx, query, inv); err != nil {
			if isUniqueViolation(err, "idx_invoices_entity_number") {
				return fmt.Errorf("invoiceRepo.Finalize: number %s already issued: %w", number, domain.ErrDuplicateInvoiceNumber)
			}
			return fmt.Errorf("invoiceRepo.Finalize: %w", err)
		}
		return nil
	})
}

func (r *invoiceRepo) SetPDFKey(ctx context.Context, entityID, invoiceID uuid.UUID, key string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE invoices SET pdf_key = $3, updated_at = NOW() WHERE entity_id = $1 AND id = $2",
		entityID, invoiceID, key)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SetPDFKey: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// missOrFinal distinguishes a missing invoice from one that is already final
// after a draft-only update matched no rows.
func (r *invoiceRepo) missOrFinal(ctx context.Context, entityID, invoiceID uuid.UUID) error {
	var status domain.InvoiceStatus
	err := r.db.GetContext(ctx, &status,
		"SELECT status FROM invoices WHERE entity_id = $1 AND id = $2", entityID, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInvoiceNotFound
		}
		return fmt.Errorf("invoiceRepo.missOrFinal: %w", err)
	}
	return domain.ErrInvoiceFinalized
}
