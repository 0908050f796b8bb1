package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

var (
	// ErrInvalidProduct indicates a malformed product payload.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrEmptyPatch indicates a partial update with no fields to apply.
	ErrEmptyPatch = errors.New("no valid field to update")
)

// ProductService covers CRUD on checkout products.
type ProductService interface {
	Create(ctx context.Context, product domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error)
	Replace(ctx context.Context, product domain.Product) (*domain.Product, error)
	Patch(ctx context.Context, id int64, patch repository.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (*domain.Product, error)
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func validateProduct(product domain.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(product.About) == "" {
		return ErrInvalidProduct
	}
	if product.Price <= 0 {
		return ErrInvalidProduct
	}
	return nil
}

func (s *productService) Create(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if _, err := s.products.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *productService) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *productService) Replace(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *productService) Patch(ctx context.Context, id int64, patch repository.ProductPatch) (*domain.Product, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return nil, ErrInvalidProduct
	}
	return s.products.Patch(ctx, id, patch)
}

func (s *productService) Delete(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.Delete(ctx, id)
}
