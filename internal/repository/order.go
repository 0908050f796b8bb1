package repository

import (
	"context"

	"storefront/internal/domain"
)

// OrderRepository persists order headers and their line associations.
type OrderRepository interface {
	Init(ctx context.Context) error
	// CreateWithLines writes the order header and one order_products row
	// per entry of productIDs inside a single transaction. Repeated ids
	// produce repeated rows. On any failure nothing is persisted.
	CreateWithLines(ctx context.Context, order *domain.Order, productIDs []int64) (int64, error)
	Get(ctx context.Context, id int64) (*domain.OrderDetail, error)
	// List returns orders joined with user and products, newest first.
	List(ctx context.Context) ([]domain.OrderDetail, error)
}
