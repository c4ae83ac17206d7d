package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShopCollection is the Mongo collection holding shop accounts.
const ShopCollection = "shops"

// Subscription plans, named by their price in rupees, each mapping to a fixed
// validity window in days.
var PlanDays = map[string]int{
	"99":  15,
	"149": 30,
	"299": 90,
	"599": 180,
}

// ShopAddress is the shop's location. Coordinates stay decimal strings, as
// supplied by the frontend's map picker.
type ShopAddress struct {
	Address   string `bson:"address" json:"address"`
	Latitude  string `bson:"latitude" json:"latitude"`
	Longitude string `bson:"longitude" json:"longitude"`
}

// PaymentDetails records the last gateway transaction applied to the shop.
type PaymentDetails struct {
	GatewayOrderID   string    `bson:"razorpayOrderId" json:"razorpayOrderId"`
	GatewayPaymentID string    `bson:"razorpayPaymentId" json:"razorpayPaymentId"`
	PaymentDate      time.Time `bson:"paymentDate" json:"paymentDate"`
}

// Shop is a shop account. A shop becomes usable for shop-scoped operations
// only once setup is complete and the subscription window covers now; the
// subscription gate enforces both.
type Shop struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"` // bcrypt hash, never serialised
	ShopAddress     ShopAddress        `bson:"shopAddress" json:"shopAddress"`
	Phone           string             `bson:"phone" json:"phone"`
	Subscription    string             `bson:"subscription" json:"subscription"`
	SubEndDate      *time.Time         `bson:"subEndDate,omitempty" json:"subEndDate,omitempty"`
	IsSetupComplete bool               `bson:"isSetupComplete" json:"isSetupComplete"`
	ShopImage       string             `bson:"shopImage" json:"shopImage"`
	PaymentDetails  PaymentDetails     `bson:"paymentDetails" json:"paymentDetails"`
}

// SubscriptionActive reports whether the shop's paid window covers now.
func (s *Shop) SubscriptionActive(now time.Time) bool {
	return s.SubEndDate != nil && !s.SubEndDate.Before(now)
}
