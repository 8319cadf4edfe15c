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

type WorkOrderRepository struct {
	coll *mongo.Collection
}

func NewWorkOrderRepository(db *mongo.Database) *WorkOrderRepository {
	return &WorkOrderRepository{coll: db.Collection("workOrders")}
}

func (r *WorkOrderRepository) Create(ctx context.Context, wo *models.WorkOrder) (*models.WorkOrder, error) {
	result, err := r.coll.InsertOne(ctx, wo)
	if err != nil {
		return nil, fmt.Errorf("failed to insert work order: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		wo.ID = oid
	}
	return wo, nil
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, id string) (*models.WorkOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var wo models.WorkOrder
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&wo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}
	return &wo, nil
}

func (r *WorkOrderRepository) FindAll(ctx context.Context) ([]models.WorkOrder, error) {
	return r.find(ctx, bson.M{})
}

func (r *WorkOrderRepository) FindByClientID(ctx context.Context, clientID string) ([]models.WorkOrder, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

func (r *WorkOrderRepository) FindByClientIDAndDueBetween(ctx context.Context, clientID string, from, to time.Time) ([]models.WorkOrder, error) {
	return r.find(ctx, bson.M{
		"clientId": clientID,
		"dueDate":  bson.M{"$gte": from, "$lte": to},
	})
}

func (r *WorkOrderRepository) FindByServiceIn(ctx context.Context, services []string) ([]models.WorkOrder, error) {
	if len(services) == 0 {
		return []models.WorkOrder{}, nil
	}
	return r.find(ctx, bson.M{"service": bson.M{"$in": services}})
}

func (r *WorkOrderRepository) Save(ctx context.Context, wo *models.WorkOrder) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": wo.ID}, wo)
	if err != nil {
		return fmt.Errorf("failed to update work order: %w", err)
	}
	return nil
}

func (r *WorkOrderRepository) find(ctx context.Context, filter bson.M) ([]models.WorkOrder, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query work orders: %w", err)
	}
	defer cursor.Close(ctx)

	var workOrders []models.WorkOrder
	if err := cursor.All(ctx, &workOrders); err != nil {
		return nil, fmt.Errorf("failed to decode work orders: %w", err)
	}
	if workOrders == nil {
		workOrders = []models.WorkOrder{}
	}
	return workOrders, nil
}
