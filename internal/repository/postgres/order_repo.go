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

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) (bool, error) {
	order.ID = uuid.New()
	now := dbNow()
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.Status == "" {
		order.Status = domain.OrderStatusPending
	}

	created := false
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO orders (id, entity_id, order_number, ordered_at, currency, customer_name, customer_email,
				billing_address, shipping_address, state, state_code, gstin, document_discount,
				prices_include_tax, status, created_at, updated_at)
			VALUES (:id, :entity_id, :order_number, :ordered_at, :currency, :customer_name, :customer_email,
				:billing_address, :shipping_address, :state, :state_code, :gstin, :document_discount,
				:prices_include_tax, :status, :created_at, :updated_at)
			ON CONFLICT (entity_id, order_number) DO NOTHING`

		result, err := tx.NamedExecContext(ctx, query, order)
		if err != nil {
			return fmt.Errorf("orderRepo.Create: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return nil
		}

		itemQuery := `
			INSERT INTO order_items (id, order_id, position, name, sku, hsn_code, quantity, unit,
				unit_price, discount_percent, gst_rate)
			VALUES (:id, :order_id, :position, :name, :sku, :hsn_code, :quantity, :unit,
				:unit_price, :discount_percent, :gst_rate)`
		for i := range order.Items {
			item := &order.Items[i]
			item.ID = uuid.New()
			item.OrderID = order.ID
			item.Position = i + 1
			if _, err := tx.NamedExecContext(ctx, itemQuery, item); err != nil {
				return fmt.Errorf("orderRepo.Create item %d: %w", item.Position, err)
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *orderRepo) GetByID(ctx context.Context, entityID, orderID uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.GetContext(ctx, &order,
		"SELECT * FROM orders WHERE entity_id = $1 AND id = $2", entityID, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}

	orders := []domain.Order{order}
	if err := loadItems(ctx, r.db, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *orderRepo) ListByEntity(ctx context.Context, entityID uuid.UUID, status domain.OrderStatus, offset, limit int) ([]domain.Order, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM orders WHERE entity_id = $1 AND ($2::text = '' OR status = $2::text)",
		entityID, string(status))
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.ListByEntity count: %w", err)
	}

	var orders []domain.Order
	err = r.db.SelectContext(ctx, &orders,
		`SELECT * FROM orders WHERE entity_id = $1 AND ($2::text = '' OR status = $2::text)
		ORDER BY ordered_at DESC LIMIT $3 OFFSET $4`,
		entityID, string(status), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("orderRepo.ListByEntity: %w", err)
	}
	if err := loadItems(ctx, r.db, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepo) ClaimPending(ctx context.Context, limit int, staleBefore time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.SelectContext(ctx, &orders, `
			UPDATE orders SET status = $1, updated_at = NOW()
			WHERE id IN (
				SELECT id FROM orders
				WHERE status = $2 OR (status = $1 AND updated_at < $3)
				ORDER BY created_at
				LIMIT $4
				FOR UPDATE SKIP LOCKED
			)
			RETURNING *`,
			domain.OrderStatusDrafting, domain.OrderStatusPending, staleBefore, limit)
		if err != nil {
			return fmt.Errorf("orderRepo.ClaimPending: %w", err)
		}
		return loadItems(ctx, tx, orders)
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) MarkInvoiced(ctx context.Context, orderID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, invoice_id = $2, failure_reason = NULL, updated_at = NOW()
		WHERE id = $3`,
		domain.OrderStatusInvoiced, invoiceID, orderID)
	if err != nil {
		return fmt.Errorf("orderRepo.MarkInvoiced: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepo) MarkFailed(ctx context.Context, orderID uuid.UUID, reason string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, failure_reason = $2, updated_at = NOW() WHERE id = $3",
		domain.OrderStatusFailed, reason, orderID)
	if err != nil {
		return fmt.Errorf("orderRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx.
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// loadItems attaches items to each order in a single query.
func loadItems(ctx context.Context, q queryer, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
	}

	query, args, err := sqlx.In("SELECT * FROM order_items WHERE order_id IN (?) ORDER BY order_id, position", ids)
	if err != nil {
		return fmt.Errorf("orderRepo.loadItems build: %w", err)
	}
	var items []domain.OrderItem
	if err := sqlx.SelectContext(ctx, q, &items, q.Rebind(query), args...); err != nil {
		return fmt.Errorf("orderRepo.loadItems: %w", err)
	}
	for _, item := range items {
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return nil
}
