package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/pkg/database"
)

type mongoFoodRepository struct {
	col *mongo.Collection
}

// NewFoodRepository returns the mongo-backed catalog repository.
func NewFoodRepository() FoodRepository {
	return &mongoFoodRepository{col: database.Collection(models.FoodCollection)}
}

func (r *mongoFoodRepository) Create(ctx context.Context, item *models.FoodItem) error {
	res, err := r.col.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid
	}
	return nil
}

func (r *mongoFoodRepository) FindByID(ctx context.Context, id string) (*models.FoodItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var item models.FoodItem
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		return nil, mapErr(err)
	}
	return &item, nil
}

// FindOwned loads an item only when it belongs to shopID, so cross-shop reads
// surface as ErrNotFound rather than leaking another shop's catalog.
func (r *mongoFoodRepository) FindOwned(ctx context.Context, id, shopID string) (*models.FoodItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	sid, err := objectID(shopID)
	if err != nil {
		return nil, err
	}

	var item models.FoodItem
	if err := r.col.FindOne(ctx, bson.M{"_id": oid, "shop": sid}).Decode(&item); err != nil {
		return nil, mapErr(err)
	}
	return &item, nil
}

func (r *mongoFoodRepository) ListByShop(ctx context.Context, shopID string) ([]models.FoodItem, error) {
	sid, err := objectID(shopID)
	if err != nil {
		return nil, err
	}

	cur, err := r.col.Find(ctx, bson.M{"shop": sid})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.FoodItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoFoodRepository) Update(ctx context.Context, item *models.FoodItem) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoFoodRepository) DeleteOwned(ctx context.Context, id, shopID string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	sid, err := objectID(shopID)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "shop": sid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
