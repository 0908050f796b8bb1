package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category is a catalog category stored in Mongo.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// CatalogProduct is a product stored in the Mongo catalog. Categories is
// only populated on reads that resolve CategoryIDs through a lookup.
type CatalogProduct struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	About       string               `bson:"about" json:"about"`
	Price       float64              `bson:"price" json:"price"`
	CategoryIDs []primitive.ObjectID `bson:"categoryIds" json:"categoryIds"`
	Categories  []Category           `bson:"categories,omitempty" json:"categories,omitempty"`
}
