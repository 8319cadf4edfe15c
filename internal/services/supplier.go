package services

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"supplier-management-api-server/internal/models"
)

// SupplierFinder is the read side of the supplier collection.
type SupplierFinder interface {
	FindByID(ctx context.Context, id string) (*models.Supplier, error)
	FindByName(ctx context.Context, name string) (*models.Supplier, error)
	FindAll(ctx context.Context) ([]models.Supplier, error)
	Delete(ctx context.Context, id string) error
}

// SupplierPage is one page of a supplier search.
type SupplierPage struct {
	Suppliers  []models.Supplier `json:"suppliers"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	TotalItems int               `json:"totalItems"`
	TotalPages int               `json:"totalPages"`
}

// FileRemover deletes a stored document by the URL UploadFile returned.
type FileRemover interface {
	DeleteFile(ctx context.Context, url string) error
}

type SupplierService struct {
	suppliers SupplierFinder
	files     FileRemover
}

func NewSupplierService(suppliers SupplierFinder, files FileRemover) *SupplierService {
	return &SupplierService{suppliers: suppliers, files: files}
}

func (s *SupplierService) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	return s.suppliers.FindByID(ctx, id)
}

func (s *SupplierService) GetSupplierByName(ctx context.Context, name string) (*models.Supplier, error) {
	return s.suppliers.FindByName(ctx, name)
}

// ListSuppliers returns every supplier with the ones furthest through the
// workflow first: approved, then submitted requirements, then pending.
func (s *SupplierService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	suppliers, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(suppliers, func(i, j int) bool {
		ri, rj := progressRank(suppliers[i]), progressRank(suppliers[j])
		if ri != rj {
			return ri < rj
		}
		return suppliers[i].SupplierName < suppliers[j].SupplierName
	})
	return suppliers, nil
}

func progressRank(s models.Supplier) int {
	switch {
	case s.WorkStatus == models.WorkStatusApproved:
		return 0
	case s.RequirementsStatus == models.RequirementStatusSubmitted:
		return 1
	default:
		return 2
	}
}

// DeleteSupplier removes the supplier record along with its stored
// documents. Blob deletion failures are logged and do not block removal.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id string) error {
	supplier, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s.files != nil {
		for _, url := range supplier.SafetyAndCompliance.DocumentURLs() {
			if err := s.files.DeleteFile(ctx, url); err != nil {
				zap.L().Warn("failed to delete supplier document",
					zap.String("supplierId", id),
					zap.String("url", url),
					zap.Error(err))
			}
		}
	}
	return s.suppliers.Delete(ctx, id)
}

// SearchDiscoverable finds approved, discoverable suppliers matching a
// keyword against name, services and regions, paginated. Page numbers are
// one-based; size defaults to 10.
func (s *SupplierService) SearchDiscoverable(ctx context.Context, query string, page, size int) (*SupplierPage, error) {
	all, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var matched []models.Supplier
	for _, sup := range all {
		if !sup.IsDiscoverable {
			continue
		}
		if needle == "" || matchesSupplier(sup, needle) {
			matched = append(matched, sup)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SupplierName < matched[j].SupplierName
	})

	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	total := len(matched)
	totalPages := (total + size - 1) / size
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := matched[start:end]
	if items == nil {
		items = []models.Supplier{}
	}
	return &SupplierPage{
		Suppliers:  items,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func matchesSupplier(sup models.Supplier, needle string) bool {
	if strings.Contains(strings.ToLower(sup.SupplierName), needle) {
		return true
	}
	for _, svc := range sup.Services {
		if strings.Contains(strings.ToLower(svc), needle) {
			return true
		}
	}
	for _, state := range sup.States {
		if strings.Contains(strings.ToLower(state), needle) {
			return true
		}
	}
	for classification := range sup.BusinessClassifications {
		if sup.BusinessClassifications[classification] && strings.Contains(strings.ToLower(classification), needle) {
			return true
		}
	}
	return false
}
