package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// FoodCollection is the Mongo collection holding catalog items.
const FoodCollection = "foods"

// FoodItem is one catalog entry, owned by exactly one shop. Every shop-scoped
// read/update/delete must verify ShopID against the authenticated shop.
type FoodItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Unit        string             `bson:"unit" json:"unit"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image" json:"image"`
	ShopID      primitive.ObjectID `bson:"shop" json:"shop"`
}
