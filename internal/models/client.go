package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovedSupplier is a supplier entry on a client's approved supplier list
// together with the contract type the client granted it.
type ApprovedSupplier struct {
	SupplierID   string       `bson:"supplierId" json:"supplierId"`
	SupplierName string       `bson:"supplierName" json:"supplierName"`
	ContractType ContractType `bson:"contractType" json:"contractType"`
}

// Client is an organization that onboards suppliers and issues work orders.
type Client struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientName  string             `bson:"clientName" json:"clientName"`
	ContactInfo ContactInfo        `bson:"contactInfo" json:"contactInfo"`
	Suppliers   []ApprovedSupplier `bson:"suppliers,omitempty" json:"suppliers,omitempty"`
}
