package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"supplier-management-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection("users")}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count > 0, nil
}

// Save inserts the user when it has no id yet, otherwise replaces it.
func (r *UserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		result, err := r.coll.InsertOne(ctx, user)
		if err != nil {
			return nil, fmt.Errorf("failed to insert user: %w", err)
		}
		if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
			user.ID = oid
		}
		return user, nil
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateLastSignIn(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastSignIn": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update last sign-in: %w", err)
	}
	return nil
}
