package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

type BusinessType string

const (
	BusinessTypeClient   BusinessType = "CLIENT"
	BusinessTypeSupplier BusinessType = "SUPPLIER"
)

// User is an account in the users collection. OrganizationName is kept in
// sync with the client or supplier record the account belongs to.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password" json:"-"`
	Name             string             `bson:"name" json:"name"`
	Role             Role               `bson:"role" json:"role"`
	BusinessType     BusinessType       `bson:"businessType" json:"businessType"`
	OrganizationName string             `bson:"organizationName,omitempty" json:"organizationName,omitempty"`
	OrgID            string             `bson:"orgId,omitempty" json:"orgId,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	LastSignIn       time.Time          `bson:"lastSignIn" json:"lastSignIn"`
}

// PasswordResetToken is a single-use token emailed during password reset.
type PasswordResetToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Token     string             `bson:"token" json:"token"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
}
