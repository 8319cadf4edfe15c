package repositories

import (
	"context"
	"errors"
	"fmt"

	"supplier-management-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection("clients")}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	result, err := r.coll.InsertOne(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to insert client: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		client.ID = oid
	}
	return client, nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*models.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var client models.Client
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return &client, nil
}

func (r *ClientRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"clientName": name})
	if err != nil {
		return false, fmt.Errorf("failed to count clients: %w", err)
	}
	return count > 0, nil
}

func (r *ClientRepository) ExistsByContactEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"contactInfo.primaryContact.primaryContactEmail": email})
	if err != nil {
		return false, fmt.Errorf("failed to count clients: %w", err)
	}
	return count > 0, nil
}

func (r *ClientRepository) Save(ctx context.Context, client *models.Client) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": client.ID}, client)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}
