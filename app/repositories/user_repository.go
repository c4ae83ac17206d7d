package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/drovo/backend/app/models"
	"github.com/drovo/backend/pkg/database"
)

type mongoUserRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns the mongo-backed user repository.
func NewUserRepository() UserRepository {
	return &mongoUserRepository{col: database.Collection(models.UserCollection)}
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *mongoUserRepository) UpdateCart(ctx context.Context, id string, cart map[string]int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	if cart == nil {
		cart = map[string]int{}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"cartData": cart}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
