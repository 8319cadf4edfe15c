package repositories

import (
	"context"
	"errors"
	"fmt"

	"supplier-management-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ResetTokenRepository struct {
	coll *mongo.Collection
}

func NewResetTokenRepository(db *mongo.Database) *ResetTokenRepository {
	return &ResetTokenRepository{coll: db.Collection("passwordResetTokens")}
}

func (r *ResetTokenRepository) Save(ctx context.Context, token *models.PasswordResetToken) error {
	_, err := r.coll.InsertOne(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to insert reset token: %w", err)
	}
	return nil
}

func (r *ResetTokenRepository) FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.coll.FindOne(ctx, bson.M{"token": token}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}
	return &t, nil
}

func (r *ResetTokenRepository) Delete(ctx context.Context, token string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}
