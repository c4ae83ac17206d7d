package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/pkg/database"
)

type mongoOrderRepository struct {
	col *mongo.Collection
}

// NewOrderRepository returns the mongo-backed order repository.
func NewOrderRepository() OrderRepository {
	return &mongoOrderRepository{col: database.Collection(models.OrderCollection)}
}

func (r *mongoOrderRepository) Create(ctx context.Context, order *models.Order) error {
	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

func (r *mongoOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&order); err != nil {
		return nil, mapErr(err)
	}
	return &order, nil
}

func (r *mongoOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	uid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"userId": uid})
}

func (r *mongoOrderRepository) ListByShop(ctx context.Context, shopID string) ([]models.Order, error) {
	sid, err := objectID(shopID)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, bson.M{"shopId": sid})
}

// list returns newest orders first.
func (r *mongoOrderRepository) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
