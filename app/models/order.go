package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderCollection is the Mongo collection holding orders.
const OrderCollection = "orders"

// OrderStatusPlaced is the status every order starts in. Later values are
// free-form strings written by the shop's admin panel.
const OrderStatusPlaced = "Food Processing"

// OrderItem is a point-in-time snapshot of a catalog item at checkout.
// A copy, not a reference: later catalog edits never alter historical orders.
type OrderItem struct {
	FoodID   primitive.ObjectID `bson:"foodId" json:"foodId"`
	Name     string             `bson:"name" json:"name"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
}

// DeliveryAddress is the delivery location snapshot taken at checkout.
type DeliveryAddress struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Zipcode string `bson:"zipcode" json:"zipcode"`
	Phone   string `bson:"phone" json:"phone"`
}

// Order is a placed order. UserID, ShopID, Items, and Amount are immutable
// once created; only Status mutates afterwards.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	ShopID         primitive.ObjectID `bson:"shopId" json:"shopId"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Amount         float64            `bson:"amount" json:"amount"`
	Address        DeliveryAddress    `bson:"address" json:"address"`
	DeliveryCharge float64            `bson:"deliveryCharge" json:"deliveryCharge"`
	Status         string             `bson:"status" json:"status"`
	Date           time.Time          `bson:"date" json:"date"`
}
