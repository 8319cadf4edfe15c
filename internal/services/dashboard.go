package services

import (
	"context"
	"time"

	"supplier-management-api-server/internal/models"
)

// WorkOrderLister is the read surface the dashboard aggregates over.
type WorkOrderLister interface {
	FindAll(ctx context.Context) ([]models.WorkOrder, error)
}

// DashboardMetrics aggregates the supplier base and work order book for the
// client dashboard.
type DashboardMetrics struct {
	TotalSuppliers      int                             `json:"totalSuppliers"`
	ApprovedSuppliers   int                             `json:"approvedSuppliers"`
	PendingRequirements int                             `json:"pendingRequirements"`
	DiscoverableCount   int                             `json:"discoverableCount"`
	RecentOnboardings   int                             `json:"recentOnboardings"`
	ByContractType      map[models.ContractType]int     `json:"byContractType"`
	DocumentCompliance  map[models.DocumentType]float64 `json:"documentCompliance"`
	OnboardingTrend     map[string]int                  `json:"onboardingTrend"`
	SuppliersByService  map[string]int                  `json:"suppliersByService"`

	TotalWorkOrders     int                             `json:"totalWorkOrders"`
	UpcomingWorkOrders  int                             `json:"upcomingWorkOrders"`
	WorkOrdersByStatus  map[models.WorkOrderStatus]int  `json:"workOrdersByStatus"`
	WorkOrdersByService map[string]int                  `json:"workOrdersByService"`
}

type DashboardService struct {
	suppliers  SupplierFinder
	workOrders WorkOrderLister
}

func NewDashboardService(suppliers SupplierFinder, workOrders WorkOrderLister) *DashboardService {
	return &DashboardService{suppliers: suppliers, workOrders: workOrders}
}

// recentWindow bounds the "recently onboarded" count and the upcoming
// work-order horizon.
const recentWindow = 30 * 24 * time.Hour

// GetMetrics computes the dashboard aggregates. DocumentCompliance is the
// share of suppliers with a valid document of each type, in [0, 1];
// OnboardingTrend buckets onboardings by calendar day.
func (s *DashboardService) GetMetrics(ctx context.Context) (*DashboardMetrics, error) {
	suppliers, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	workOrders, err := s.workOrders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	m := &DashboardMetrics{
		TotalSuppliers:      len(suppliers),
		TotalWorkOrders:     len(workOrders),
		ByContractType:      make(map[models.ContractType]int),
		DocumentCompliance:  make(map[models.DocumentType]float64),
		OnboardingTrend:     make(map[string]int),
		SuppliersByService:  make(map[string]int),
		WorkOrdersByStatus:  make(map[models.WorkOrderStatus]int),
		WorkOrdersByService: make(map[string]int),
	}

	validCounts := make(map[models.DocumentType]int)
	now := time.Now()
	cutoff := now.Add(-recentWindow)
	horizon := now.Add(recentWindow)

	for _, sup := range suppliers {
		if sup.WorkStatus == models.WorkStatusApproved {
			m.ApprovedSuppliers++
		}
		if sup.RequirementsStatus == models.RequirementStatusPending {
			m.PendingRequirements++
		}
		if sup.IsDiscoverable {
			m.DiscoverableCount++
		}
		if sup.OnboardingDate.After(cutoff) {
			m.RecentOnboardings++
		}
		if !sup.OnboardingDate.IsZero() {
			m.OnboardingTrend[sup.OnboardingDate.Format("2006-01-02")]++
		}
		m.ByContractType[sup.ContractType]++
		for _, svc := range sup.Services {
			m.SuppliersByService[svc]++
		}

		for _, dt := range models.AllDocumentTypes {
			if sup.SafetyAndCompliance.ValidatedDocuments[dt] {
				validCounts[dt]++
			}
		}
	}

	for _, wo := range workOrders {
		m.WorkOrdersByStatus[wo.Status]++
		if wo.Service != "" {
			m.WorkOrdersByService[wo.Service]++
		}
		active := wo.Status == models.WorkOrderStatusPending || wo.Status == models.WorkOrderStatusInProgress
		if active && wo.DueDate.After(now) && wo.DueDate.Before(horizon) {
			m.UpcomingWorkOrders++
		}
	}

	for _, dt := range models.AllDocumentTypes {
		if len(suppliers) == 0 {
			m.DocumentCompliance[dt] = 0
			continue
		}
		m.DocumentCompliance[dt] = float64(validCounts[dt]) / float64(len(suppliers))
	}
	return m, nil
}
