// Package database owns the MongoDB client.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drovo/backend/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the Mongo client and verifies the connection with a ping.
// Returns an error instead of exiting so the caller can shut down gracefully.
func Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDB())
	return nil
}

// DB returns the application database. Connect must have been called.
func DB() *mongo.Database { return db }

// Collection returns a named collection from the application database.
// Safe to call before Connect (the route:list command builds the router
// without a database); the returned collection is only usable after.
func Collection(name string) *mongo.Collection {
	if db == nil {
		return nil
	}
	return db.Collection(name)
}

// Disconnect closes the client, flushing in-flight operations.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
