package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/pkg/database"
)

type mongoShopRepository struct {
	col *mongo.Collection
}

// NewShopRepository returns the mongo-backed shop repository.
func NewShopRepository() ShopRepository {
	return &mongoShopRepository{col: database.Collection(models.ShopCollection)}
}

func (r *mongoShopRepository) FindByID(ctx context.Context, id string) (*models.Shop, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var shop models.Shop
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&shop); err != nil {
		return nil, mapErr(err)
	}
	return &shop, nil
}

func (r *mongoShopRepository) FindByEmail(ctx context.Context, email string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&shop); err != nil {
		return nil, mapErr(err)
	}
	return &shop, nil
}

func (r *mongoShopRepository) Create(ctx context.Context, shop *models.Shop) error {
	res, err := r.col.InsertOne(ctx, shop)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		shop.ID = oid
	}
	return nil
}

func (r *mongoShopRepository) Update(ctx context.Context, shop *models.Shop) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": shop.ID}, shop)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindActive returns shops whose subscription window covers now — the public
// marketplace listing.
func (r *mongoShopRepository) FindActive(ctx context.Context, now time.Time) ([]models.Shop, error) {
	cur, err := r.col.Find(ctx, bson.M{"subEndDate": bson.M{"$gte": now}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var shops []models.Shop
	if err := cur.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}
