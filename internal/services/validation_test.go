package services

import (
	"context"
	"errors"
	"testing"

	"supplier-management-api-server/internal/docintel"
	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/queue/nats"
)

func seedSupplier(store *fakeSupplierStore, validated map[models.DocumentType]bool) *models.Supplier {
	supplier := newSupplierPayload("Acme")
	supplier.ApplyDefaults()
	supplier.SafetyAndCompliance.SubmittedDocuments = map[models.DocumentType]bool{
		models.DocumentTypeCOI:      true,
		models.DocumentTypeOSHALog:  true,
		models.DocumentTypeBankInfo: true,
	}
	supplier.SafetyAndCompliance.ValidatedDocuments = validated
	supplier.RequirementsStatus = models.RequirementStatusSubmitted
	store.Create(context.Background(), supplier)
	return supplier
}

func newValidationHarness(store *fakeSupplierStore, analyzer *fakeAnalyzer) (*ValidationService, *fakeNotifier, *fakeApprovalMailer, *fakeLedger) {
	notifier := &fakeNotifier{}
	mailer := &fakeApprovalMailer{}
	ledger := &fakeLedger{}
	return NewValidationService(store, analyzer, notifier, mailer, ledger), notifier, mailer, ledger
}

func TestValidationApprovesSupplierOnLastDocument(t *testing.T) {
	store := newFakeSupplierStore()
	supplier := seedSupplier(store, map[models.DocumentType]bool{
		models.DocumentTypeOSHALog:  true,
		models.DocumentTypeBankInfo: true,
	})

	analyzer := &fakeAnalyzer{results: map[string]docintel.Result{
		"https://cdn.test/coi.pdf": {Fields: map[string]string{
			"title":       "Certificate of Insurance",
			"expiry date": "2027-01-31",
		}},
	}}
	svc, notifier, mailer, ledger := newValidationHarness(store, analyzer)

	outcome, err := svc.AnalyzeAndValidate(context.Background(), nats.ValidationTask{
		SupplierID:  supplier.ID.Hex(),
		DocumentURL: "https://cdn.test/coi.pdf",
	})
	if err != nil {
		t.Fatalf("AnalyzeAndValidate: %v", err)
	}
	if outcome != "Document processed: Valid COI document" {
		t.Errorf("outcome = %q", outcome)
	}

	stored := store.get(supplier.ID.Hex())
	if stored.WorkStatus != models.WorkStatusApproved {
		t.Errorf("workStatus = %s, want APPROVED", stored.WorkStatus)
	}
	if !stored.IsDiscoverable {
		t.Error("approved supplier must be discoverable")
	}
	if !stored.SafetyAndCompliance.ValidatedDocuments[models.DocumentTypeCOI] {
		t.Error("COI verdict not recorded")
	}

	if len(notifier.organizations) != 1 || notifier.organizations[0] != "Acme" {
		t.Errorf("notifier organizations = %v, want [Acme]", notifier.organizations)
	}
	if len(mailer.recipients) != 1 || mailer.recipients[0] != "contact@acme.test" {
		t.Errorf("mailer recipients = %v", mailer.recipients)
	}
	if len(ledger.entries) != 1 {
		t.Errorf("ledger entries = %v, want one validation record", ledger.entries)
	}
}

func TestValidationRejectsCOIWithoutExpiry(t *testing.T) {
	store := newFakeSupplierStore()
	supplier := seedSupplier(store, map[models.DocumentType]bool{
		models.DocumentTypeOSHALog:  true,
		models.DocumentTypeBankInfo: true,
	})

	analyzer := &fakeAnalyzer{results: map[string]docintel.Result{
		"https://cdn.test/coi.pdf": {Fields: map[string]string{
			"title":       "Insurance Certificate",
			"expiry date": "   ",
		}},
	}}
	svc, notifier, _, _ := newValidationHarness(store, analyzer)

	outcome, err := svc.AnalyzeAndValidate(context.Background(), nats.ValidationTask{
		SupplierID:  supplier.ID.Hex(),
		DocumentURL: "https://cdn.test/coi.pdf",
	})
	if err != nil {
		t.Fatalf("AnalyzeAndValidate: %v", err)
	}
	if outcome != "Rejected: Missing expiry date" {
		t.Errorf("outcome = %q", outcome)
	}

	stored := store.get(supplier.ID.Hex())
	if stored.SafetyAndCompliance.ValidatedDocuments[models.DocumentTypeCOI] {
		t.Error("blank-expiry COI must be recorded as invalid")
	}
	if stored.WorkStatus != models.WorkStatusNotApproved {
		t.Errorf("workStatus = %s, want NOT_APPROVED", stored.WorkStatus)
	}
	if stored.IsDiscoverable {
		t.Error("supplier must not be discoverable with an invalid document")
	}
	if len(notifier.organizations) != 0 {
		t.Error("no approval event expected")
	}
}

func TestValidationUnknownDocumentLeavesSupplierUntouched(t *testing.T) {
	store := newFakeSupplierStore()
	supplier := seedSupplier(store, nil)

	analyzer := &fakeAnalyzer{results: map[string]docintel.Result{
		"https://cdn.test/doc.pdf": {Fields: map[string]string{"title": "Company Brochure"}},
	}}
	svc, _, _, ledger := newValidationHarness(store, analyzer)

	outcome, err := svc.AnalyzeAndValidate(context.Background(), nats.ValidationTask{
		SupplierID:  supplier.ID.Hex(),
		DocumentURL: "https://cdn.test/doc.pdf",
	})
	if err != nil {
		t.Fatalf("AnalyzeAndValidate: %v", err)
	}
	if outcome != "Rejected: Unknown document type" {
		t.Errorf("outcome = %q", outcome)
	}
	if store.updates != 0 {
		t.Error("unknown document must not mutate the supplier")
	}
	if len(ledger.entries) != 1 {
		t.Error("rejection must still be anchored on the ledger")
	}
}

func TestValidationMissingTitleIsUnknown(t *testing.T) {
	store := newFakeSupplierStore()
	supplier := seedSupplier(store, nil)

	analyzer := &fakeAnalyzer{results: map[string]docintel.Result{
		"https://cdn.test/doc.pdf": {Fields: map[string]string{}},
	}}
	svc, _, _, _ := newValidationHarness(store, analyzer)

	outcome, err := svc.AnalyzeAndValidate(context.Background(), nats.ValidationTask{
		SupplierID:  supplier.ID.Hex(),
		DocumentURL: "https://cdn.test/doc.pdf",
	})
	if err != nil {
		t.Fatalf("AnalyzeAndValidate: %v", err)
	}
	if outcome != "Rejected: Unknown document type" {
		t.Errorf("outcome = %q", outcome)
	}
}

func TestValidationIsIdempotentAfterApproval(t *testing.T) {
	store := newFakeSupplierStore()
	supplier := seedSupplier(store, map[models.DocumentType]bool{
		models.DocumentTypeOSHALog:  true,
		models.DocumentTypeBankInfo: true,
	})

	analyzer := &fakeAnalyzer{results: map[string]docintel.Result{
		"https://cdn.test/coi.pdf": {Fields: map[string]string{
			"title":       "COI",
			"expiry date": "2027-01-31",
		}},
	}}
	svc, notifier, mailer, _ := newValidationHarness(store, analyzer)

	task := nats.ValidationTask{SupplierID: supplier.ID.Hex(), DocumentURL: "https://cdn.test/coi.pdf"}
	for i := 0; i < 2; i++ {
		if _, err := svc.AnalyzeAndValidate(context.Background(), task); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	if len(notifier.organizations) != 1 {
		t.Errorf("approval announced %d times, want once", len(notifier.organizations))
	}
	if len(mailer.recipients) != 1 {
		t.Errorf("approval mailed %d times, want once", len(mailer.recipients))
	}
	if stored := store.get(supplier.ID.Hex()); stored.WorkStatus != models.WorkStatusApproved {
		t.Errorf("workStatus = %s after re-validation", stored.WorkStatus)
	}
}

func TestValidationRetriesVersionConflict(t *testing.T) {
	store := newFakeSupplierStore()
	supplier := seedSupplier(store, nil)
	store.conflicts = 1

	analyzer := &fakeAnalyzer{results: map[string]docintel.Result{
		"https://cdn.test/osha.pdf": {Fields: map[string]string{"title": "OSHA 300 Log"}},
	}}
	svc, _, _, _ := newValidationHarness(store, analyzer)

	if _, err := svc.AnalyzeAndValidate(context.Background(), nats.ValidationTask{
		SupplierID:  supplier.ID.Hex(),
		DocumentURL: "https://cdn.test/osha.pdf",
	}); err != nil {
		t.Fatalf("AnalyzeAndValidate: %v", err)
	}

	stored := store.get(supplier.ID.Hex())
	if !stored.SafetyAndCompliance.ValidatedDocuments[models.DocumentTypeOSHALog] {
		t.Error("verdict lost across version conflict retry")
	}
}

func TestValidationAnalyzerFailurePropagates(t *testing.T) {
	store := newFakeSupplierStore()
	supplier := seedSupplier(store, nil)

	analyzer := &fakeAnalyzer{failure: errors.New("service unavailable")}
	svc, _, _, ledger := newValidationHarness(store, analyzer)

	if _, err := svc.AnalyzeAndValidate(context.Background(), nats.ValidationTask{
		SupplierID:  supplier.ID.Hex(),
		DocumentURL: "https://cdn.test/coi.pdf",
	}); err == nil {
		t.Fatal("expected analyzer failure to propagate")
	}
	if store.updates != 0 {
		t.Error("failed analysis must not mutate the supplier")
	}
	if len(ledger.entries) != 0 {
		t.Error("failed analysis must not be anchored")
	}
}
