package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
	"storefront/internal/realtime"
	"storefront/internal/repository"
)

var (
	// ErrInvalidObjectID indicates an identifier that is not a valid hex ObjectID.
	ErrInvalidObjectID = errors.New("invalid object id")
	// ErrInvalidCategory indicates a malformed category payload.
	ErrInvalidCategory = errors.New("invalid category")
)

// CatalogProductInput is the write shape for catalog products; category
// references arrive as hex strings and are converted to storage ids.
type CatalogProductInput struct {
	Name        string
	About       string
	Price       float64
	CategoryIDs []string
}

// CatalogService stores catalog entities and publishes a change event
// after every successful product write. Fanout is best-effort: it never
// blocks and never fails the write.
type CatalogService interface {
	CreateProduct(ctx context.Context, input CatalogProductInput) (*domain.CatalogProduct, error)
	ListProducts(ctx context.Context) ([]domain.CatalogProduct, error)
	DeleteProduct(ctx context.Context, id string) (*domain.CatalogProduct, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type catalogService struct {
	catalog   repository.CatalogRepository
	publisher realtime.Publisher
}

func NewCatalogService(catalog repository.CatalogRepository, publisher realtime.Publisher) CatalogService {
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &catalogService{
		catalog:   catalog,
		publisher: publisher,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, input CatalogProductInput) (*domain.CatalogProduct, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.About) == "" || input.Price <= 0 {
		return nil, ErrInvalidProduct
	}

	categoryIDs := make([]primitive.ObjectID, 0, len(input.CategoryIDs))
	for _, hex := range input.CategoryIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return nil, ErrInvalidObjectID
		}
		categoryIDs = append(categoryIDs, id)
	}

	product := &domain.CatalogProduct{
		Name:        input.Name,
		About:       input.About,
		Price:       input.Price,
		CategoryIDs: categoryIDs,
	}
	if err := s.catalog.InsertProduct(ctx, product); err != nil {
		return nil, err
	}

	s.publisher.Publish(realtime.EventProductCreated, product)
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]domain.CatalogProduct, error) {
	return s.catalog.ListProducts(ctx)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) (*domain.CatalogProduct, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidObjectID
	}

	product, err := s.catalog.DeleteProduct(ctx, objectID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(realtime.EventProductDeleted, product.ID.Hex())
	return product, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidCategory
	}

	category := &domain.Category{Name: name}
	if err := s.catalog.InsertCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.ListCategories(ctx)
}
