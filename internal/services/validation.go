package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"supplier-management-api-server/internal/docintel"
	"supplier-management-api-server/internal/documents"
	"supplier-management-api-server/internal/metrics"
	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/queue/nats"
	"supplier-management-api-server/internal/repositories"
)

// Analyzer extracts structured fields from a document URL.
type Analyzer interface {
	Analyze(ctx context.Context, documentURL string) (docintel.Result, error)
}

// ApprovalNotifier pushes a live event to every dashboard session of an
// organization.
type ApprovalNotifier interface {
	SendToOrganization(organization string, message []byte)
}

// ApprovalMailer emails the supplier contact when the supplier is approved.
type ApprovalMailer interface {
	SendSupplierApproved(to, supplierName string) error
}

// AuditLedger anchors every validation verdict on the compliance ledger.
type AuditLedger interface {
	RecordValidation(supplierID, documentType, outcome string) error
}

type ValidationService struct {
	suppliers SupplierStore
	analyzer  Analyzer
	notifier  ApprovalNotifier
	mailer    ApprovalMailer
	ledger    AuditLedger
}

func NewValidationService(suppliers SupplierStore, analyzer Analyzer, notifier ApprovalNotifier, mailer ApprovalMailer, ledger AuditLedger) *ValidationService {
	return &ValidationService{
		suppliers: suppliers,
		analyzer:  analyzer,
		notifier:  notifier,
		mailer:    mailer,
		ledger:    ledger,
	}
}

// approvalEvent is the websocket payload pushed when a supplier flips to
// APPROVED.
type approvalEvent struct {
	Event        string `json:"event"`
	SupplierID   string `json:"supplierId"`
	SupplierName string `json:"supplierName"`
}

// AnalyzeAndValidate runs one validation task end to end: extract fields,
// judge the document, merge the verdict into the supplier record, and fire
// the approval side effects when the last document turns valid. The returned
// outcome string is what gets logged and anchored on the ledger.
func (s *ValidationService) AnalyzeAndValidate(ctx context.Context, task nats.ValidationTask) (string, error) {
	result, err := s.analyzer.Analyze(ctx, task.DocumentURL)
	if err != nil {
		return "", fmt.Errorf("analysis of %s failed: %w", task.DocumentURL, err)
	}

	title := result.Field("title")
	if title == "" {
		title = "Unknown"
	}
	verdict := documents.Validate(title, result.Field("expiry date"))

	if !verdict.Known {
		outcome := "Rejected: " + verdict.Reason
		metrics.DocumentsValidated.WithLabelValues("UNKNOWN", "rejected").Inc()
		s.anchorOutcome(task.SupplierID, "UNKNOWN", outcome)
		return outcome, nil
	}

	supplier, promoted, err := s.recordVerdict(ctx, task.SupplierID, verdict)
	if err != nil {
		return "", err
	}

	var outcome string
	if verdict.Valid {
		outcome = "Document processed: " + verdict.Reason
		metrics.DocumentsValidated.WithLabelValues(string(verdict.Type), "valid").Inc()
	} else {
		outcome = "Rejected: " + verdict.Reason
		metrics.DocumentsValidated.WithLabelValues(string(verdict.Type), "invalid").Inc()
	}

	s.anchorOutcome(task.SupplierID, string(verdict.Type), outcome)

	if promoted {
		s.announceApproval(supplier)
	}
	return outcome, nil
}

// recordVerdict merges one document verdict into the supplier and promotes
// it to APPROVED when every required document is valid. Replayed on version
// conflicts so concurrent verdicts never overwrite each other.
func (s *ValidationService) recordVerdict(ctx context.Context, supplierID string, verdict documents.ValidationResult) (*models.Supplier, bool, error) {
	for attempt := 0; attempt < updateRetries; attempt++ {
		supplier, err := s.suppliers.FindByID(ctx, supplierID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load supplier %s: %w", supplierID, err)
		}

		if supplier.SafetyAndCompliance.ValidatedDocuments == nil {
			supplier.SafetyAndCompliance.ValidatedDocuments = make(map[models.DocumentType]bool)
		}
		supplier.SafetyAndCompliance.ValidatedDocuments[verdict.Type] = verdict.Valid

		promoted := false
		if supplier.AllDocumentsValid() && supplier.WorkStatus != models.WorkStatusApproved {
			supplier.WorkStatus = models.WorkStatusApproved
			supplier.IsDiscoverable = true
			promoted = true
		}

		err = s.suppliers.Update(ctx, supplier)
		if err == nil {
			return supplier, promoted, nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return nil, false, fmt.Errorf("failed to record validation verdict: %w", err)
		}
	}
	return nil, false, fmt.Errorf("failed to record validation verdict: %w", repositories.ErrVersionConflict)
}

// announceApproval fires the approval side effects. Each one is advisory;
// the persisted state transition is already durable.
func (s *ValidationService) announceApproval(supplier *models.Supplier) {
	metrics.SuppliersApproved.Inc()
	zap.L().Info("supplier approved",
		zap.String("supplierId", supplier.ID.Hex()),
		zap.String("supplierName", supplier.SupplierName))

	if s.notifier != nil {
		payload, _ := json.Marshal(approvalEvent{
			Event:        "SUPPLIER_APPROVED",
			SupplierID:   supplier.ID.Hex(),
			SupplierName: supplier.SupplierName,
		})
		s.notifier.SendToOrganization(supplier.Organization, payload)
	}

	if s.mailer != nil {
		to := supplier.ContactInfo.PrimaryContact.PrimaryContactEmail
		if to != "" {
			if err := s.mailer.SendSupplierApproved(to, supplier.SupplierName); err != nil {
				zap.L().Warn("failed to send approval email", zap.String("to", to), zap.Error(err))
			}
		}
	}
}

func (s *ValidationService) anchorOutcome(supplierID, documentType, outcome string) {
	if s.ledger == nil {
		return
	}
	if err := s.ledger.RecordValidation(supplierID, documentType, outcome); err != nil {
		zap.L().Warn("failed to anchor validation outcome on ledger",
			zap.String("supplierId", supplierID),
			zap.Error(err))
	}
}
