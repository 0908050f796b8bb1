package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
)

// CatalogRepository stores the Mongo-backed product catalog.
type CatalogRepository interface {
	InsertProduct(ctx context.Context, product *domain.CatalogProduct) error
	// ListProducts resolves each product's CategoryIDs into its
	// Categories field.
	ListProducts(ctx context.Context) ([]domain.CatalogProduct, error)
	// DeleteProduct removes the product and returns its prior state.
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (*domain.CatalogProduct, error)
	InsertCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
