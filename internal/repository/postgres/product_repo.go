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

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Upsert(ctx context.Context, product *domain.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := dbNow()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (id, entity_id, handle, sku, title, hsn_code, gst_rate, price, unit, created_at, updated_at)
		VALUES (:id, :entity_id, :handle, :sku, :title, :hsn_code, :gst_rate, :price, :unit, :created_at, :updated_at)
		ON CONFLICT (entity_id, sku) DO UPDATE SET
			handle = EXCLUDED.handle,
			title = EXCLUDED.title,
			hsn_code = EXCLUDED.hsn_code,
			gst_rate = EXCLUDED.gst_rate,
			price = EXCLUDED.price,
			unit = EXCLUDED.unit,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	rows, err := r.db.NamedQueryContext(ctx, query, product)
	if err != nil {
		return fmt.Errorf("productRepo.Upsert: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&product.ID, &product.CreatedAt); err != nil {
			return fmt.Errorf("productRepo.Upsert scan: %w", err)
		}
	}
	return rows.Err()
}

func (r *productRepo) GetBySKU(ctx context.Context, entityID uuid.UUID, sku string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product,
		"SELECT * FROM products WHERE entity_id = $1 AND sku = $2", entityID, sku)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.GetBySKU: %w", err)
	}
	return &product, nil
}

func (r *productRepo) ListByEntity(ctx context.Context, entityID uuid.UUID, offset, limit int) ([]domain.Product, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products WHERE entity_id = $1", entityID)
	if err != nil {
		return nil, 0, fmt.Errorf("productRepo.ListByEntity count: %w", err)
	}

	var products []domain.Product
	err = r.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE entity_id = $1 ORDER BY sku LIMIT $2 OFFSET $3",
		entityID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("productRepo.ListByEntity: %w", err)
	}
	return products, total, nil
}
