package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "PENDING"
	WorkOrderStatusInProgress WorkOrderStatus = "IN_PROGRESS"
	WorkOrderStatusCompleted  WorkOrderStatus = "COMPLETED"
	WorkOrderStatusCancelled  WorkOrderStatus = "CANCELLED"
)

// WorkOrder is a unit of work a client issues against approved suppliers.
type WorkOrder struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status          WorkOrderStatus    `bson:"status" json:"status"`
	ClientID        string             `bson:"clientId" json:"clientId"`
	Location        string             `bson:"location" json:"location"`
	DueDate         time.Time          `bson:"dueDate" json:"dueDate"`
	StartDate       time.Time          `bson:"startDate" json:"startDate"`
	SupplierIDs     []string           `bson:"supplierIds,omitempty" json:"supplierIds,omitempty"`
	ProjectManager  string             `bson:"projectManager,omitempty" json:"projectManager,omitempty"`
	WorkOrderNumber string             `bson:"workOrderNumber" json:"workOrderNumber"`
	TaskDescription string             `bson:"taskDescription" json:"taskDescription"`
	Service         string             `bson:"service" json:"service"`
}
