package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/realtime"
	"storefront/internal/repository"
)

func TestCreateCatalogProductPublishesCreation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	published := &capturePublisher{}
	svc := NewCatalogService(repo, published)

	category, err := svc.CreateCategory(ctx, "garden")
	require.NoError(t, err)

	product, err := svc.CreateProduct(ctx, CatalogProductInput{
		Name:        "hose",
		About:       "20m garden hose",
		Price:       15.5,
		CategoryIDs: []string{category.ID.Hex()},
	})
	require.NoError(t, err)
	assert.False(t, product.ID.IsZero())
	require.Len(t, product.CategoryIDs, 1)
	assert.Equal(t, category.ID, product.CategoryIDs[0])

	events := published.all()
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventProductCreated, events[0].event)
	assert.Equal(t, product, events[0].payload)
}

func TestCreateCatalogProductRejectsBadCategoryID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	published := &capturePublisher{}
	svc := NewCatalogService(repo, published)

	_, err := svc.CreateProduct(ctx, CatalogProductInput{
		Name:        "hose",
		About:       "20m garden hose",
		Price:       15.5,
		CategoryIDs: []string{"not-a-hex-id"},
	})
	assert.ErrorIs(t, err, ErrInvalidObjectID)
	assert.Empty(t, repo.products, "nothing may be stored for a bad reference")
	assert.Empty(t, published.all())
}

func TestCreateCatalogProductRejectsNonPositivePrice(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newFakeCatalogRepo(), &capturePublisher{})

	_, err := svc.CreateProduct(ctx, CatalogProductInput{Name: "hose", About: "garden hose", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestDeleteCatalogProductReturnsPriorStateAndPublishes(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	published := &capturePublisher{}
	svc := NewCatalogService(repo, published)

	product, err := svc.CreateProduct(ctx, CatalogProductInput{Name: "hose", About: "garden hose", Price: 15.5})
	require.NoError(t, err)

	deleted, err := svc.DeleteProduct(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, product.Name, deleted.Name)
	assert.Empty(t, repo.products)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products, "deleted product must not appear in listings")

	events := published.all()
	require.Len(t, events, 2)
	assert.Equal(t, realtime.EventProductDeleted, events[1].event)
	assert.Equal(t, product.ID.Hex(), events[1].payload)
}

func TestDeleteCatalogProductUnknownID(t *testing.T) {
	ctx := context.Background()
	published := &capturePublisher{}
	svc := NewCatalogService(newFakeCatalogRepo(), published)

	_, err := svc.DeleteProduct(ctx, "0123456789abcdef01234567")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, published.all(), "no event may be published for a failed delete")
}

func TestListCatalogProductsResolvesCategories(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCatalogRepo()
	svc := NewCatalogService(repo, nil)

	category, err := svc.CreateCategory(ctx, "garden")
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, CatalogProductInput{
		Name:        "hose",
		About:       "garden hose",
		Price:       15.5,
		CategoryIDs: []string{category.ID.Hex()},
	})
	require.NoError(t, err)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Len(t, products[0].Categories, 1)
	assert.Equal(t, "garden", products[0].Categories[0].Name)
}
