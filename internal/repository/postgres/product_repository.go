package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const createProductsTable = `
CREATE TABLE IF NOT EXISTS products (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	about TEXT NOT NULL,
	price NUMERIC(12,2) NOT NULL CHECK (price > 0)
);
`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProductsTable); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (int64, error) {
	err := r.db.QueryRowContext(ctx, `
INSERT INTO products (name, about, price)
VALUES ($1, $2, $3)
RETURNING id`,
		product.Name,
		product.About,
		product.Price,
	).Scan(&product.ID)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return product.ID, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, about, price
FROM products
WHERE id = $1`,
		id,
	)
	return scanProduct(row)
}

func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, about, price
FROM products
WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
  AND ($2 = '' OR about ILIKE '%' || $2 || '%')
  AND ($3::numeric IS NULL OR price <= $3)
ORDER BY id ASC`,
		filter.Name,
		filter.About,
		filter.MaxPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, about, price
FROM products
WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("query products by ids: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET name = $1, about = $2, price = $3
WHERE id = $4`,
		product.Name,
		product.About,
		product.Price,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Patch(ctx context.Context, id int64, patch repository.ProductPatch) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
UPDATE products
SET name  = COALESCE($1, name),
    about = COALESCE($2, about),
    price = COALESCE($3, price)
WHERE id = $4
RETURNING id, name, about, price`,
		patch.Name,
		patch.About,
		patch.Price,
		id,
	)
	return scanProduct(row)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, `
DELETE FROM products
WHERE id = $1
RETURNING id, name, about, price`,
		id,
	)
	return scanProduct(row)
}

func scanProduct(row interface {
	Scan(dest ...any) error
}) (*domain.Product, error) {
	var product domain.Product
	if err := row.Scan(
		&product.ID,
		&product.Name,
		&product.About,
		&product.Price,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &product, nil
}

func collectProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.About, &product.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
