package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstinvoice/internal/domain"
	"gstinvoice/internal/port"
)

type entityRepo struct {
	db *sqlx.DB
}

// NewEntityRepo creates a new PostgreSQL-backed EntityRepository.
func NewEntityRepo(db *sqlx.DB) port.EntityRepository {
	return &entityRepo{db: db}
}

func (r *entityRepo) Create(ctx context.Context, entity *domain.Entity) error {
	entity.ID = uuid.New()
	now := dbNow()
	entity.CreatedAt = now
	entity.UpdatedAt = now
	if entity.NextInvoiceSeq < 1 {
		entity.NextInvoiceSeq = 1
	}

	query := `INSERT INTO entities (id, name, gstin, address, state, state_code, email, phone,
			bank_name, account_number, ifsc_code, invoice_prefix, next_invoice_seq, created_at, updated_at)
		VALUES (:id, :name, :gstin, :address, :state, :state_code, :email, :phone,
			:bank_name, :account_number, :ifsc_code, :invoice_prefix, :next_invoice_seq, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, entity); err != nil {
		return fmt.Errorf("entityRepo.Create: %w", err)
	}
	return nil
}

func (r *entityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	var entity domain.Entity
	err := r.db.GetContext(ctx, &entity, "SELECT * FROM entities WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("entityRepo.GetByID: %w", err)
	}
	return &entity, nil
}

func (r *entityRepo) List(ctx context.Context, offset, limit int) ([]domain.Entity, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM entities"); err != nil {
		return nil, 0, fmt.Errorf("entityRepo.List count: %w", err)
	}

	var entities []domain.Entity
	err := r.db.SelectContext(ctx, &entities,
		"SELECT * FROM entities ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("entityRepo.List: %w", err)
	}
	return entities, total, nil
}

func (r *entityRepo) Update(ctx context.Context, entity *domain.Entity) error {
	entity.UpdatedAt = dbNow()
	query := `UPDATE entities SET name = :name, gstin = :gstin, address = :address, state = :state,
			state_code = :state_code, email = :email, phone = :phone, bank_name = :bank_name,
			account_number = :account_number, ifsc_code = :ifsc_code, invoice_prefix = :invoice_prefix,
			updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, entity)
	if err != nil {
		return fmt.Errorf("entityRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

func (r *entityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entities WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEntityInUse
		}
		return fmt.Errorf("entityRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}
