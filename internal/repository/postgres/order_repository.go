package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const (
	createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
	id BIGSERIAL PRIMARY KEY,
	user_id BIGINT NOT NULL REFERENCES users(id),
	total NUMERIC(12,2) NOT NULL,
	payment BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`
	createOrderProductsTable = `
CREATE TABLE IF NOT EXISTS order_products (
	order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id BIGINT NOT NULL REFERENCES products(id)
);
`
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createOrdersTable); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createOrderProductsTable); err != nil {
		return fmt.Errorf("create order_products table: %w", err)
	}
	return nil
}

func (r *OrderRepository) CreateWithLines(ctx context.Context, order *domain.Order, productIDs []int64) (int64, error) {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if err := tx.QueryRowContext(ctx, `
INSERT INTO orders (user_id, total, payment, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		order.UserID,
		order.Total,
		order.Payment,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID); err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, productID := range productIDs {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO order_products (order_id, product_id)
VALUES ($1, $2)`,
			order.ID,
			productID,
		); err != nil {
			return 0, fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return order.ID, nil
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT o.id, o.total, o.payment, o.created_at, o.updated_at,
       u.id, u.username, u.email
FROM orders o
JOIN users u ON u.id = o.user_id
WHERE o.id = $1`,
		id,
	)

	detail, err := scanOrderDetail(row)
	if err != nil {
		return nil, err
	}
	if detail.Products, err = r.listOrderProducts(ctx, detail.ID); err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.OrderDetail, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT o.id, o.total, o.payment, o.created_at, o.updated_at,
       u.id, u.username, u.email
FROM orders o
JOIN users u ON u.id = o.user_id
ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var details []domain.OrderDetail
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	for i := range details {
		if details[i].Products, err = r.listOrderProducts(ctx, details[i].ID); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (r *OrderRepository) listOrderProducts(ctx context.Context, orderID int64) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.name, p.about, p.price
FROM products p
JOIN order_products op ON op.product_id = p.id
WHERE op.order_id = $1
ORDER BY p.id ASC`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("query order products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func scanOrderDetail(row interface {
	Scan(dest ...any) error
}) (*domain.OrderDetail, error) {
	var detail domain.OrderDetail
	if err := row.Scan(
		&detail.ID,
		&detail.Total,
		&detail.Payment,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.User.ID,
		&detail.User.Username,
		&detail.User.Email,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &detail, nil
}
