// Package services implements the business workflows behind the HTTP
// handlers and the validation worker.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"supplier-management-api-server/internal/documents"
	"supplier-management-api-server/internal/metrics"
	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/queue/nats"
	"supplier-management-api-server/internal/repositories"
)

// updateRetries caps how often a read-modify-write is replayed after a
// version conflict before giving up.
const updateRetries = 3

// SupplierStore is the persistence surface the workflows need.
type SupplierStore interface {
	Create(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	FindByID(ctx context.Context, id string) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
}

// UserStore resolves and updates the account tied to a supplier contact.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) (*models.User, error)
}

// FileUploader stores a document and returns its retrievable URL.
type FileUploader interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, objectKey string) (string, error)
}

// TaskPublisher hands validation work to the worker process.
type TaskPublisher interface {
	PublishValidationTask(ctx context.Context, task nats.ValidationTask) error
}

// ObjectKeyFunc builds the blob key for an uploaded file.
type ObjectKeyFunc func(supplierID, originalFilename string) string

// UploadedFile is one multipart file part of an onboarding request. Open is
// called once per upload attempt.
type UploadedFile struct {
	FieldName   string
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type OnboardingService struct {
	suppliers SupplierStore
	users     UserStore
	uploader  FileUploader
	publisher TaskPublisher
	objectKey ObjectKeyFunc
}

func NewOnboardingService(suppliers SupplierStore, users UserStore, uploader FileUploader, publisher TaskPublisher, objectKey ObjectKeyFunc) *OnboardingService {
	return &OnboardingService{
		suppliers: suppliers,
		users:     users,
		uploader:  uploader,
		publisher: publisher,
		objectKey: objectKey,
	}
}

// OnboardSupplier persists the supplier profile first, then uploads and
// classifies each provided document. A failed or unclassifiable upload is
// skipped with a log line; the supplier record always survives with whatever
// subset of documents made it through. Validation of the uploaded documents
// runs asynchronously in the worker.
func (s *OnboardingService) OnboardSupplier(ctx context.Context, supplier *models.Supplier, files []UploadedFile) (*models.Supplier, error) {
	supplier.ApplyDefaults()
	if supplier.SafetyAndCompliance.SubmittedDocuments == nil {
		supplier.SafetyAndCompliance.SubmittedDocuments = make(map[models.DocumentType]bool)
	}
	if supplier.SafetyAndCompliance.ValidatedDocuments == nil {
		supplier.SafetyAndCompliance.ValidatedDocuments = make(map[models.DocumentType]bool)
	}

	created, err := s.suppliers.Create(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to onboard supplier: %w", err)
	}
	metrics.SuppliersOnboarded.Inc()

	s.syncUserOrganization(ctx, created)

	uploaded := s.uploadDocuments(ctx, created, files)

	if len(uploaded) > 0 {
		if err := s.persistDocumentState(ctx, created); err != nil {
			return nil, err
		}
	}

	for _, url := range uploaded {
		task := nats.ValidationTask{SupplierID: created.ID.Hex(), DocumentURL: url}
		if err := s.publisher.PublishValidationTask(ctx, task); err != nil {
			zap.L().Error("failed to enqueue validation task",
				zap.String("supplierId", task.SupplierID),
				zap.Error(err))
		}
	}

	return created, nil
}

// syncUserOrganization points the contact's account at the new supplier
// organization. The contact may not have an account yet; that is not an
// error.
func (s *OnboardingService) syncUserOrganization(ctx context.Context, supplier *models.Supplier) {
	email := supplier.ContactInfo.PrimaryContact.PrimaryContactEmail
	if email == "" {
		return
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			zap.L().Info("no account for supplier contact yet", zap.String("email", email))
		} else {
			zap.L().Warn("failed to look up supplier contact account", zap.Error(err))
		}
		return
	}

	user.OrganizationName = supplier.Organization
	if _, err := s.users.Save(ctx, user); err != nil {
		zap.L().Warn("failed to link account to supplier organization",
			zap.String("email", email),
			zap.Error(err))
	}
}

// uploadDocuments pushes each file to blob storage and records it on the
// in-memory supplier. Returns the URLs that made it through.
func (s *OnboardingService) uploadDocuments(ctx context.Context, supplier *models.Supplier, files []UploadedFile) []string {
	var uploaded []string

	for _, f := range files {
		docType, ok := documents.Classify(f.FieldName)
		if !ok {
			zap.L().Warn("skipping unrecognized document field",
				zap.String("field", f.FieldName),
				zap.String("filename", f.Filename))
			continue
		}

		reader, err := f.Open()
		if err != nil {
			zap.L().Error("failed to open uploaded file",
				zap.String("filename", f.Filename),
				zap.Error(err))
			continue
		}

		key := s.objectKey(supplier.ID.Hex(), f.Filename)
		url, err := s.uploader.UploadFile(ctx, reader, f.ContentType, key)
		reader.Close()
		if err != nil {
			zap.L().Error("failed to upload document",
				zap.String("filename", f.Filename),
				zap.String("type", string(docType)),
				zap.Error(err))
			continue
		}

		recordSubmission(supplier, docType, url)
		metrics.DocumentsSubmitted.WithLabelValues(string(docType)).Inc()
		uploaded = append(uploaded, url)
	}

	if supplier.AllDocumentsSubmitted() {
		supplier.RequirementsStatus = models.RequirementStatusSubmitted
	}
	return uploaded
}

func recordSubmission(supplier *models.Supplier, docType models.DocumentType, url string) {
	switch docType {
	case models.DocumentTypeCOI:
		supplier.SafetyAndCompliance.COIURL = url
	case models.DocumentTypeOSHALog:
		supplier.SafetyAndCompliance.OSHALogsURL = url
	case models.DocumentTypeBankInfo:
		supplier.SafetyAndCompliance.BankInfoURL = url
	}
	supplier.SafetyAndCompliance.SubmittedDocuments[docType] = true
}

// persistDocumentState writes the uploaded-document bookkeeping back. On a
// version conflict the submission state is re-applied onto a fresh read.
func (s *OnboardingService) persistDocumentState(ctx context.Context, supplier *models.Supplier) error {
	state := supplier.SafetyAndCompliance
	requirements := supplier.RequirementsStatus

	for attempt := 0; attempt < updateRetries; attempt++ {
		err := s.suppliers.Update(ctx, supplier)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return fmt.Errorf("failed to record submitted documents: %w", err)
		}

		fresh, ferr := s.suppliers.FindByID(ctx, supplier.ID.Hex())
		if ferr != nil {
			return fmt.Errorf("failed to reload supplier after conflict: %w", ferr)
		}
		mergeSubmissionState(fresh, state, requirements)
		*supplier = *fresh
	}
	return fmt.Errorf("failed to record submitted documents: %w", repositories.ErrVersionConflict)
}

func mergeSubmissionState(fresh *models.Supplier, state models.SafetyAndCompliance, requirements models.RequirementStatus) {
	if fresh.SafetyAndCompliance.SubmittedDocuments == nil {
		fresh.SafetyAndCompliance.SubmittedDocuments = make(map[models.DocumentType]bool)
	}
	for dt := range state.SubmittedDocuments {
		fresh.SafetyAndCompliance.SubmittedDocuments[dt] = true
	}
	if state.COIURL != "" {
		fresh.SafetyAndCompliance.COIURL = state.COIURL
	}
	if state.OSHALogsURL != "" {
		fresh.SafetyAndCompliance.OSHALogsURL = state.OSHALogsURL
	}
	if state.BankInfoURL != "" {
		fresh.SafetyAndCompliance.BankInfoURL = state.BankInfoURL
	}
	if requirements == models.RequirementStatusSubmitted || fresh.AllDocumentsSubmitted() {
		fresh.RequirementsStatus = models.RequirementStatusSubmitted
	}
}
