package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"supplier-management-api-server/internal/models"
)

// ErrWorkOrderFinished means a completed or cancelled work order cannot be
// modified further.
var ErrWorkOrderFinished = errors.New("work order is already finished")

// WorkOrderStore is the persistence surface for work orders.
type WorkOrderStore interface {
	Create(ctx context.Context, wo *models.WorkOrder) (*models.WorkOrder, error)
	FindByID(ctx context.Context, id string) (*models.WorkOrder, error)
	FindByClientID(ctx context.Context, clientID string) ([]models.WorkOrder, error)
	FindByClientIDAndDueBetween(ctx context.Context, clientID string, from, to time.Time) ([]models.WorkOrder, error)
	FindByServiceIn(ctx context.Context, services []string) ([]models.WorkOrder, error)
	Save(ctx context.Context, wo *models.WorkOrder) error
}

type WorkOrderService struct {
	workOrders WorkOrderStore
	clients    ClientStore
}

func NewWorkOrderService(workOrders WorkOrderStore, clients ClientStore) *WorkOrderService {
	return &WorkOrderService{workOrders: workOrders, clients: clients}
}

// statusRank orders active work before finished work: IN_PROGRESS first,
// then PENDING, then the rest.
func statusRank(status models.WorkOrderStatus) int {
	switch status {
	case models.WorkOrderStatusInProgress:
		return 0
	case models.WorkOrderStatusPending:
		return 1
	default:
		return 2
	}
}

// CreateWorkOrder validates the issuing client, assigns a work order number
// and stores the order in PENDING state.
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, wo *models.WorkOrder) (*models.WorkOrder, error) {
	if _, err := s.clients.FindByID(ctx, wo.ClientID); err != nil {
		return nil, fmt.Errorf("failed to resolve issuing client: %w", err)
	}

	if wo.Status == "" {
		wo.Status = models.WorkOrderStatusPending
	}
	if wo.StartDate.IsZero() {
		wo.StartDate = time.Now()
	}
	wo.WorkOrderNumber = newWorkOrderNumber()

	created, err := s.workOrders.Create(ctx, wo)
	if err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}
	return created, nil
}

// newWorkOrderNumber builds a human-readable unique order number, e.g.
// WO-20260830-1A2B3C4D.
func newWorkOrderNumber() string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("WO-%s-%s", time.Now().Format("20060102"), suffix)
}

func (s *WorkOrderService) GetWorkOrder(ctx context.Context, id string) (*models.WorkOrder, error) {
	return s.workOrders.FindByID(ctx, id)
}

// GetClientWorkOrders lists a client's work orders with active ones first.
func (s *WorkOrderService) GetClientWorkOrders(ctx context.Context, clientID string) ([]models.WorkOrder, error) {
	orders, err := s.workOrders.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		ri, rj := statusRank(orders[i].Status), statusRank(orders[j].Status)
		if ri != rj {
			return ri < rj
		}
		return orders[i].DueDate.Before(orders[j].DueDate)
	})
	return orders, nil
}

// GetClientWorkOrdersDue lists a client's work orders due inside a window.
func (s *WorkOrderService) GetClientWorkOrdersDue(ctx context.Context, clientID string, from, to time.Time) ([]models.WorkOrder, error) {
	return s.workOrders.FindByClientIDAndDueBetween(ctx, clientID, from, to)
}

// GetWorkOrdersByServices lists work orders requesting any of the given
// services, so a supplier can discover matching work.
func (s *WorkOrderService) GetWorkOrdersByServices(ctx context.Context, services []string) ([]models.WorkOrder, error) {
	if len(services) == 0 {
		return []models.WorkOrder{}, nil
	}
	return s.workOrders.FindByServiceIn(ctx, services)
}

// UpdateStatus moves a work order through its lifecycle. Finished orders
// are immutable.
func (s *WorkOrderService) UpdateStatus(ctx context.Context, id string, status models.WorkOrderStatus) (*models.WorkOrder, error) {
	wo, err := s.workOrders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo.Status == models.WorkOrderStatusCompleted || wo.Status == models.WorkOrderStatusCancelled {
		return nil, ErrWorkOrderFinished
	}

	wo.Status = status
	if err := s.workOrders.Save(ctx, wo); err != nil {
		return nil, fmt.Errorf("failed to update work order status: %w", err)
	}
	return wo, nil
}

// VoidWorkOrder cancels a pending or in-progress work order.
func (s *WorkOrderService) VoidWorkOrder(ctx context.Context, id string) (*models.WorkOrder, error) {
	return s.UpdateStatus(ctx, id, models.WorkOrderStatusCancelled)
}

// AssignSuppliers replaces the supplier assignment of an active work order.
func (s *WorkOrderService) AssignSuppliers(ctx context.Context, id string, supplierIDs []string) (*models.WorkOrder, error) {
	wo, err := s.workOrders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wo.Status == models.WorkOrderStatusCompleted || wo.Status == models.WorkOrderStatusCancelled {
		return nil, ErrWorkOrderFinished
	}

	wo.SupplierIDs = supplierIDs
	if wo.Status == models.WorkOrderStatusPending && len(supplierIDs) > 0 {
		wo.Status = models.WorkOrderStatusInProgress
	}
	if err := s.workOrders.Save(ctx, wo); err != nil {
		return nil, fmt.Errorf("failed to assign suppliers: %w", err)
	}
	return wo, nil
}
