package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type CatalogRepository struct {
	products   *mongo.Collection
	categories *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &CatalogRepository{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
	}
}

func (r *CatalogRepository) InsertProduct(ctx context.Context, product *domain.CatalogProduct) error {
	res, err := r.products.InsertOne(ctx, bson.M{
		"name":        product.Name,
		"about":       product.About,
		"price":       product.Price,
		"categoryIds": product.CategoryIDs,
	})
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.CatalogProduct, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "categories"},
			{Key: "localField", Value: "categoryIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categories"},
		}}},
	}

	cursor, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.CatalogProduct
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) (*domain.CatalogProduct, error) {
	var product domain.CatalogProduct
	err := r.products.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return &product, nil
}

func (r *CatalogRepository) InsertCategory(ctx context.Context, category *domain.Category) error {
	res, err := r.categories.InsertOne(ctx, bson.M{"name": category.Name})
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []domain.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}
