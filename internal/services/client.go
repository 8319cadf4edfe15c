package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/repositories"
)

var (
	// ErrClientExists means a client with the same name or contact email is
	// already registered.
	ErrClientExists = errors.New("client already exists")
	// ErrSupplierNotApproved means the supplier cannot be added to an
	// approved list before its documents validate.
	ErrSupplierNotApproved = errors.New("supplier is not approved for work")
)

// ClientStore is the persistence surface for client organizations.
type ClientStore interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	FindByID(ctx context.Context, id string) (*models.Client, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByContactEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, client *models.Client) error
}

type ClientService struct {
	clients   ClientStore
	suppliers SupplierStore
	users     UserStore
}

func NewClientService(clients ClientStore, suppliers SupplierStore, users UserStore) *ClientService {
	return &ClientService{clients: clients, suppliers: suppliers, users: users}
}

// CreateClient registers a client organization. Name and primary contact
// email are unique across clients.
func (s *ClientService) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	if taken, err := s.clients.ExistsByName(ctx, client.ClientName); err != nil {
		return nil, fmt.Errorf("failed to check client name: %w", err)
	} else if taken {
		return nil, ErrClientExists
	}

	email := client.ContactInfo.PrimaryContact.PrimaryContactEmail
	if taken, err := s.clients.ExistsByContactEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to check client contact email: %w", err)
	} else if taken {
		return nil, ErrClientExists
	}

	if client.Suppliers == nil {
		client.Suppliers = []models.ApprovedSupplier{}
	}
	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.syncClientUser(ctx, created)
	return created, nil
}

func (s *ClientService) syncClientUser(ctx context.Context, client *models.Client) {
	email := client.ContactInfo.PrimaryContact.PrimaryContactEmail
	if email == "" {
		return
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			zap.L().Warn("failed to look up client contact account", zap.Error(err))
		}
		return
	}
	user.OrganizationName = client.ClientName
	if _, err := s.users.Save(ctx, user); err != nil {
		zap.L().Warn("failed to link account to client", zap.String("email", email), zap.Error(err))
	}
}

func (s *ClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	return s.clients.FindByID(ctx, id)
}

// AddApprovedSupplier puts an approved supplier on the client's list with
// the granted contract type, and mirrors the contract type onto the
// supplier record.
func (s *ClientService) AddApprovedSupplier(ctx context.Context, clientID, supplierID string, contractType models.ContractType) (*models.Client, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.suppliers.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier.WorkStatus != models.WorkStatusApproved {
		return nil, ErrSupplierNotApproved
	}

	for i, entry := range client.Suppliers {
		if entry.SupplierID == supplierID {
			client.Suppliers[i].ContractType = contractType
			if err := s.clients.Save(ctx, client); err != nil {
				return nil, fmt.Errorf("failed to update approved supplier: %w", err)
			}
			s.syncSupplierContract(ctx, supplierID, contractType)
			return client, nil
		}
	}

	client.Suppliers = append(client.Suppliers, models.ApprovedSupplier{
		SupplierID:   supplierID,
		SupplierName: supplier.SupplierName,
		ContractType: contractType,
	})
	if err := s.clients.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to add approved supplier: %w", err)
	}
	s.syncSupplierContract(ctx, supplierID, contractType)
	return client, nil
}

// syncSupplierContract mirrors the granted contract type onto the supplier,
// replaying on version conflicts.
func (s *ClientService) syncSupplierContract(ctx context.Context, supplierID string, contractType models.ContractType) {
	for attempt := 0; attempt < updateRetries; attempt++ {
		supplier, err := s.suppliers.FindByID(ctx, supplierID)
		if err != nil {
			zap.L().Warn("failed to reload supplier for contract sync", zap.Error(err))
			return
		}
		supplier.ContractType = contractType

		err = s.suppliers.Update(ctx, supplier)
		if err == nil {
			return
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			zap.L().Warn("failed to sync supplier contract type", zap.Error(err))
			return
		}
	}
	zap.L().Warn("gave up syncing supplier contract type after conflicts",
		zap.String("supplierId", supplierID))
}

// GetApprovedSuppliers returns the client's approved supplier list.
func (s *ClientService) GetApprovedSuppliers(ctx context.Context, clientID string) ([]models.ApprovedSupplier, error) {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.Suppliers == nil {
		return []models.ApprovedSupplier{}, nil
	}
	return client.Suppliers, nil
}
