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

var (
	ErrNotFound = errors.New("document not found")
	// ErrVersionConflict means the entity changed between read and write.
	// Callers re-read and re-apply their mutation.
	ErrVersionConflict = errors.New("version conflict")
)

type SupplierRepository struct {
	coll *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *SupplierRepository {
	return &SupplierRepository{coll: db.Collection("suppliers")}
}

// Create inserts a new supplier and assigns its id and initial version.
func (r *SupplierRepository) Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	supplier.Version = 1
	result, err := r.coll.InsertOne(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to insert supplier: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		supplier.ID = oid
	}
	return supplier, nil
}

func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*models.Supplier, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var supplier models.Supplier
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&supplier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return &supplier, nil
}

func (r *SupplierRepository) FindByName(ctx context.Context, name string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.coll.FindOne(ctx, bson.M{"supplierName": name}).Decode(&supplier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return &supplier, nil
}

func (r *SupplierRepository) FindByContactEmail(ctx context.Context, email string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.coll.FindOne(ctx, bson.M{"contactInfo.primaryContact.primaryContactEmail": email}).Decode(&supplier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return &supplier, nil
}

func (r *SupplierRepository) FindAll(ctx context.Context) ([]models.Supplier, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer cursor.Close(ctx)

	var suppliers []models.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("failed to decode suppliers: %w", err)
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	return suppliers, nil
}

// Update replaces the supplier document, guarded by the version it was read
// at. A concurrent writer bumps the version and this call returns
// ErrVersionConflict instead of silently losing the other write.
func (r *SupplierRepository) Update(ctx context.Context, supplier *models.Supplier) error {
	readVersion := supplier.Version
	supplier.Version = readVersion + 1

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": supplier.ID, "version": readVersion}, supplier)
	if err != nil {
		supplier.Version = readVersion
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if result.MatchedCount == 0 {
		supplier.Version = readVersion
		count, countErr := r.coll.CountDocuments(ctx, bson.M{"_id": supplier.ID})
		if countErr == nil && count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	return nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
