package database

import (
	"context"
	"time"

	"supplier-management-api-server/internal/auth"
	"supplier-management-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAdmin creates the bootstrap admin account if no user holds its email yet.
func SeedAdmin(db *mongo.Database) error {
	userCollection := db.Collection("users")
	adminEmail := "admin@example.com"

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"email": adminEmail})
	if err != nil {
		return err
	}
	if count > 0 {
		zap.L().Debug("admin already exists, seeding skipped")
		return nil
	}

	zap.L().Info("admin not found, seeding")
	hashedPassword, err := auth.HashPassword("adminpassword")
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        adminEmail,
		Name:         "Admin",
		Password:     hashedPassword,
		Role:         models.RoleAdmin,
		BusinessType: models.BusinessTypeClient,
		CreatedAt:    time.Now(),
		LastSignIn:   time.Now(),
	}

	if _, err := userCollection.InsertOne(context.Background(), admin); err != nil {
		return err
	}

	zap.L().Info("admin seeded successfully", zap.String("email", adminEmail))
	return nil
}
