// Package models defines the documents persisted to MongoDB.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserCollection is the Mongo collection holding user accounts.
const UserCollection = "users"

// User is an end-user account. The cart maps food item ids to quantities and
// is advisory pre-checkout state, cleared when an order is placed.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // bcrypt hash, never serialised
	CartData map[string]int     `bson:"cartData" json:"cartData"`
}
