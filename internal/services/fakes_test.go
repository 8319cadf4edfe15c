package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"supplier-management-api-server/internal/docintel"
	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/queue/nats"
	"supplier-management-api-server/internal/repositories"
)

type fakeSupplierStore struct {
	mu        sync.Mutex
	suppliers map[string]*models.Supplier
	// conflicts forces this many ErrVersionConflict results before updates
	// succeed again.
	conflicts int
	updates   int
	failAll   error
}

func newFakeSupplierStore() *fakeSupplierStore {
	return &fakeSupplierStore{suppliers: make(map[string]*models.Supplier)}
}

func copySupplier(s *models.Supplier) *models.Supplier {
	c := *s
	c.Services = append([]string(nil), s.Services...)
	c.States = append([]string(nil), s.States...)
	if s.SafetyAndCompliance.SubmittedDocuments != nil {
		c.SafetyAndCompliance.SubmittedDocuments = make(map[models.DocumentType]bool, len(s.SafetyAndCompliance.SubmittedDocuments))
		for k, v := range s.SafetyAndCompliance.SubmittedDocuments {
			c.SafetyAndCompliance.SubmittedDocuments[k] = v
		}
	}
	if s.SafetyAndCompliance.ValidatedDocuments != nil {
		c.SafetyAndCompliance.ValidatedDocuments = make(map[models.DocumentType]bool, len(s.SafetyAndCompliance.ValidatedDocuments))
		for k, v := range s.SafetyAndCompliance.ValidatedDocuments {
			c.SafetyAndCompliance.ValidatedDocuments[k] = v
		}
	}
	return &c
}

func (f *fakeSupplierStore) Create(_ context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if supplier.ID.IsZero() {
		supplier.ID = primitive.NewObjectID()
	}
	supplier.Version = 1
	f.suppliers[supplier.ID.Hex()] = copySupplier(supplier)
	return supplier, nil
}

func (f *fakeSupplierStore) FindByID(_ context.Context, id string) (*models.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.suppliers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copySupplier(s), nil
}

func (f *fakeSupplierStore) FindByName(_ context.Context, name string) (*models.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.suppliers {
		if s.SupplierName == name {
			return copySupplier(s), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSupplierStore) FindAll(_ context.Context) ([]models.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := make([]models.Supplier, 0, len(f.suppliers))
	for _, s := range f.suppliers {
		out = append(out, *copySupplier(s))
	}
	return out, nil
}

func (f *fakeSupplierStore) Update(_ context.Context, supplier *models.Supplier) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	stored, ok := f.suppliers[supplier.ID.Hex()]
	if !ok {
		return repositories.ErrNotFound
	}
	if f.conflicts > 0 {
		f.conflicts--
		return repositories.ErrVersionConflict
	}
	if stored.Version != supplier.Version {
		return repositories.ErrVersionConflict
	}
	supplier.Version++
	f.suppliers[supplier.ID.Hex()] = copySupplier(supplier)
	return nil
}

func (f *fakeSupplierStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.suppliers[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.suppliers, id)
	return nil
}

func (f *fakeSupplierStore) get(id string) *models.Supplier {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copySupplier(f.suppliers[id])
}

type fakeUserStore struct {
	users map[string]*models.User
	saved []*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserStore) Save(_ context.Context, user *models.User) (*models.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	c := *user
	f.users[user.Email] = &c
	f.saved = append(f.saved, &c)
	return user, nil
}

func (f *fakeUserStore) UpdateLastSignIn(_ context.Context, id primitive.ObjectID) error {
	for _, u := range f.users {
		if u.ID == id {
			u.LastSignIn = time.Now()
		}
	}
	return nil
}

type fakeUploader struct {
	uploaded []string
	deleted  []string
	// failFor makes uploads whose key contains the substring fail.
	failFor string
}

func (f *fakeUploader) UploadFile(_ context.Context, file io.Reader, _ string, objectKey string) (string, error) {
	io.Copy(io.Discard, file)
	if f.failFor != "" && strings.Contains(objectKey, f.failFor) {
		return "", fmt.Errorf("upload refused for %s", objectKey)
	}
	f.uploaded = append(f.uploaded, objectKey)
	return "https://cdn.test/" + objectKey, nil
}

func (f *fakeUploader) DeleteFile(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

type fakePublisher struct {
	tasks   []nats.ValidationTask
	failure error
}

func (f *fakePublisher) PublishValidationTask(_ context.Context, task nats.ValidationTask) error {
	if f.failure != nil {
		return f.failure
	}
	f.tasks = append(f.tasks, task)
	return nil
}

type fakeAnalyzer struct {
	results map[string]docintel.Result
	failure error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, documentURL string) (docintel.Result, error) {
	if f.failure != nil {
		return docintel.Result{}, f.failure
	}
	return f.results[documentURL], nil
}

type fakeNotifier struct {
	organizations []string
	payloads      [][]byte
}

func (f *fakeNotifier) SendToOrganization(organization string, message []byte) {
	f.organizations = append(f.organizations, organization)
	f.payloads = append(f.payloads, message)
}

type fakeApprovalMailer struct {
	recipients []string
}

func (f *fakeApprovalMailer) SendSupplierApproved(to, _ string) error {
	f.recipients = append(f.recipients, to)
	return nil
}

type fakeLedger struct {
	entries []string
}

func (f *fakeLedger) RecordValidation(supplierID, documentType, outcome string) error {
	f.entries = append(f.entries, fmt.Sprintf("%s/%s/%s", supplierID, documentType, outcome))
	return nil
}

type fakeClientStore struct {
	clients map[string]*models.Client
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{clients: make(map[string]*models.Client)}
}

func (f *fakeClientStore) Create(_ context.Context, client *models.Client) (*models.Client, error) {
	if client.ID.IsZero() {
		client.ID = primitive.NewObjectID()
	}
	c := *client
	f.clients[client.ID.Hex()] = &c
	return client, nil
}

func (f *fakeClientStore) FindByID(_ context.Context, id string) (*models.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	cp.Suppliers = append([]models.ApprovedSupplier(nil), c.Suppliers...)
	return &cp, nil
}

func (f *fakeClientStore) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, c := range f.clients {
		if c.ClientName == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClientStore) ExistsByContactEmail(_ context.Context, email string) (bool, error) {
	for _, c := range f.clients {
		if c.ContactInfo.PrimaryContact.PrimaryContactEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeClientStore) Save(_ context.Context, client *models.Client) error {
	c := *client
	c.Suppliers = append([]models.ApprovedSupplier(nil), client.Suppliers...)
	f.clients[client.ID.Hex()] = &c
	return nil
}

type fakeWorkOrderStore struct {
	orders map[string]*models.WorkOrder
}

func newFakeWorkOrderStore() *fakeWorkOrderStore {
	return &fakeWorkOrderStore{orders: make(map[string]*models.WorkOrder)}
}

func (f *fakeWorkOrderStore) Create(_ context.Context, wo *models.WorkOrder) (*models.WorkOrder, error) {
	if wo.ID.IsZero() {
		wo.ID = primitive.NewObjectID()
	}
	c := *wo
	f.orders[wo.ID.Hex()] = &c
	return wo, nil
}

func (f *fakeWorkOrderStore) FindByID(_ context.Context, id string) (*models.WorkOrder, error) {
	wo, ok := f.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *wo
	return &c, nil
}

func (f *fakeWorkOrderStore) FindAll(_ context.Context) ([]models.WorkOrder, error) {
	var out []models.WorkOrder
	for _, wo := range f.orders {
		out = append(out, *wo)
	}
	return out, nil
}

func (f *fakeWorkOrderStore) FindByClientID(_ context.Context, clientID string) ([]models.WorkOrder, error) {
	var out []models.WorkOrder
	for _, wo := range f.orders {
		if wo.ClientID == clientID {
			out = append(out, *wo)
		}
	}
	return out, nil
}

func (f *fakeWorkOrderStore) FindByClientIDAndDueBetween(_ context.Context, clientID string, from, to time.Time) ([]models.WorkOrder, error) {
	var out []models.WorkOrder
	for _, wo := range f.orders {
		if wo.ClientID == clientID && !wo.DueDate.Before(from) && !wo.DueDate.After(to) {
			out = append(out, *wo)
		}
	}
	return out, nil
}

func (f *fakeWorkOrderStore) FindByServiceIn(_ context.Context, services []string) ([]models.WorkOrder, error) {
	var out []models.WorkOrder
	for _, wo := range f.orders {
		for _, svc := range services {
			if wo.Service == svc {
				out = append(out, *wo)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeWorkOrderStore) Save(_ context.Context, wo *models.WorkOrder) error {
	c := *wo
	f.orders[wo.ID.Hex()] = &c
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*models.PasswordResetToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.PasswordResetToken)}
}

func (f *fakeTokenStore) Save(_ context.Context, token *models.PasswordResetToken) error {
	c := *token
	f.tokens[token.Token] = &c
	return nil
}

func (f *fakeTokenStore) FindByToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

type fakeResetMailer struct {
	tokens map[string]string
}

func (f *fakeResetMailer) SendPasswordReset(to, token string) error {
	if f.tokens == nil {
		f.tokens = make(map[string]string)
	}
	f.tokens[to] = token
	return nil
}
