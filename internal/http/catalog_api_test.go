package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"
)

type stubCatalogService struct {
	product    *domain.CatalogProduct
	products   []domain.CatalogProduct
	category   *domain.Category
	categories []domain.Category
	err        error
}

func (s *stubCatalogService) CreateProduct(_ context.Context, _ service.CatalogProductInput) (*domain.CatalogProduct, error) {
	return s.product, s.err
}
func (s *stubCatalogService) ListProducts(_ context.Context) ([]domain.CatalogProduct, error) {
	return s.products, s.err
}
func (s *stubCatalogService) DeleteProduct(_ context.Context, _ string) (*domain.CatalogProduct, error) {
	return s.product, s.err
}
func (s *stubCatalogService) CreateCategory(_ context.Context, _ string) (*domain.Category, error) {
	return s.category, s.err
}
func (s *stubCatalogService) ListCategories(_ context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func newCatalogRouter(catalog *stubCatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewCatalogHandler(catalog, nil).RegisterRoutes(router)
	return router
}

func TestCatalogCreateProductReturns201(t *testing.T) {
	catalog := &stubCatalogService{product: &domain.CatalogProduct{
		ID:    primitive.NewObjectID(),
		Name:  "mug",
		About: "ceramic",
		Price: 5.5,
	}}
	router := newCatalogRouter(catalog)

	w := doJSON(t, router, http.MethodPost, "/products", gin.H{
		"name":        "mug",
		"about":       "ceramic",
		"price":       5.5,
		"categoryIds": []string{primitive.NewObjectID().Hex()},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "mug")
}

func TestCatalogCreateProductRejectsMissingCategories(t *testing.T) {
	router := newCatalogRouter(&stubCatalogService{})

	w := doJSON(t, router, http.MethodPost, "/products", gin.H{
		"name":  "mug",
		"about": "ceramic",
		"price": 5.5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogCreateProductAcceptsEmptyCategories(t *testing.T) {
	// uncategorized products are fine; only an absent field is rejected
	catalog := &stubCatalogService{product: &domain.CatalogProduct{
		ID:    primitive.NewObjectID(),
		Name:  "mug",
		About: "ceramic",
		Price: 5.5,
	}}
	router := newCatalogRouter(catalog)

	w := doJSON(t, router, http.MethodPost, "/products", gin.H{
		"name":        "mug",
		"about":       "ceramic",
		"price":       5.5,
		"categoryIds": []string{},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCatalogDeleteProductErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"malformed id", service.ErrInvalidObjectID, http.StatusBadRequest},
		{"unknown id", repository.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newCatalogRouter(&stubCatalogService{err: tc.err})

			w := doJSON(t, router, http.MethodDelete, "/products/whatever", nil)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestCatalogListProductsEmptySliceNotNull(t *testing.T) {
	router := newCatalogRouter(&stubCatalogService{})

	w := doJSON(t, router, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestCatalogCreateCategory(t *testing.T) {
	catalog := &stubCatalogService{category: &domain.Category{ID: primitive.NewObjectID(), Name: "kitchen"}}
	router := newCatalogRouter(catalog)

	w := doJSON(t, router, http.MethodPost, "/categories", gin.H{"name": "kitchen"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "kitchen")
}
