package repository

import (
	"context"

	"storefront/internal/domain"
)

// ProductFilter narrows product listings. Name and About match as
// case-insensitive substrings; MaxPrice is an inclusive upper bound.
type ProductFilter struct {
	Name     string
	About    string
	MaxPrice *float64
}

// ProductPatch carries the optional fields of a partial update. Nil
// means "leave unchanged".
type ProductPatch struct {
	Name  *string
	About *string
	Price *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.About == nil && p.Price == nil
}

// ProductRepository exposes persistence operations for checkout products.
type ProductRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, product *domain.Product) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	// ListByIDs returns the distinct products matching ids; callers decide
	// what a missing id means.
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Patch(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error)
	// Delete removes the product and returns its prior state.
	Delete(ctx context.Context, id int64) (*domain.Product, error)
}
