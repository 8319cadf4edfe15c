package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"supplier-management-api-server/internal/models"
)

func testObjectKey(supplierID, filename string) string {
	return supplierID + "/" + filename
}

func testFile(field, filename string) UploadedFile {
	return UploadedFile{
		FieldName:   field,
		Filename:    filename,
		ContentType: "application/pdf",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("%PDF-1.4")), nil
		},
	}
}

func newSupplierPayload(name string) *models.Supplier {
	return &models.Supplier{
		SupplierName: name,
		ContactInfo: models.ContactInfo{
			PrimaryContact: models.PrimaryContact{
				PrimaryContactEmail: "contact@" + strings.ToLower(name) + ".test",
				PrimaryContactName:  "Contact",
			},
		},
	}
}

func TestOnboardSupplierAllDocuments(t *testing.T) {
	store := newFakeSupplierStore()
	users := newFakeUserStore()
	uploader := &fakeUploader{}
	publisher := &fakePublisher{}
	svc := NewOnboardingService(store, users, uploader, publisher, testObjectKey)

	files := []UploadedFile{
		testFile("coi", "certificate.pdf"),
		testFile("oshaLogs", "logs.pdf"),
		testFile("bankInfo", "bank.pdf"),
	}
	created, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Acme"), files)
	if err != nil {
		t.Fatalf("OnboardSupplier: %v", err)
	}

	stored := store.get(created.ID.Hex())
	if stored.RequirementsStatus != models.RequirementStatusSubmitted {
		t.Errorf("requirementsStatus = %s, want SUBMITTED", stored.RequirementsStatus)
	}
	if stored.WorkStatus != models.WorkStatusNotApproved {
		t.Errorf("workStatus = %s, want NOT_APPROVED", stored.WorkStatus)
	}
	if stored.IsDiscoverable {
		t.Error("supplier must not be discoverable before validation")
	}
	for _, dt := range models.AllDocumentTypes {
		if !stored.SafetyAndCompliance.SubmittedDocuments[dt] {
			t.Errorf("submittedDocuments[%s] not recorded", dt)
		}
		if stored.SafetyAndCompliance.ValidatedDocuments[dt] {
			t.Errorf("validatedDocuments[%s] set without analysis", dt)
		}
	}
	if stored.SafetyAndCompliance.COIURL == "" || stored.SafetyAndCompliance.OSHALogsURL == "" || stored.SafetyAndCompliance.BankInfoURL == "" {
		t.Error("expected all three document URLs to be recorded")
	}
	if len(publisher.tasks) != 3 {
		t.Fatalf("published %d validation tasks, want 3", len(publisher.tasks))
	}
	for _, task := range publisher.tasks {
		if task.SupplierID != created.ID.Hex() {
			t.Errorf("task supplier id = %s, want %s", task.SupplierID, created.ID.Hex())
		}
	}
}

func TestOnboardSupplierPartialDocuments(t *testing.T) {
	store := newFakeSupplierStore()
	svc := NewOnboardingService(store, newFakeUserStore(), &fakeUploader{}, &fakePublisher{}, testObjectKey)

	created, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Partial"), []UploadedFile{
		testFile("coi", "certificate.pdf"),
	})
	if err != nil {
		t.Fatalf("OnboardSupplier: %v", err)
	}

	stored := store.get(created.ID.Hex())
	if stored.RequirementsStatus != models.RequirementStatusPending {
		t.Errorf("requirementsStatus = %s, want PENDING with missing documents", stored.RequirementsStatus)
	}
	if !stored.SafetyAndCompliance.SubmittedDocuments[models.DocumentTypeCOI] {
		t.Error("COI submission not recorded")
	}
	if stored.SafetyAndCompliance.SubmittedDocuments[models.DocumentTypeOSHALog] {
		t.Error("OSHA log marked submitted without an upload")
	}
}

func TestOnboardSupplierNoDocuments(t *testing.T) {
	store := newFakeSupplierStore()
	publisher := &fakePublisher{}
	svc := NewOnboardingService(store, newFakeUserStore(), &fakeUploader{}, publisher, testObjectKey)

	created, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Bare"), nil)
	if err != nil {
		t.Fatalf("OnboardSupplier: %v", err)
	}

	stored := store.get(created.ID.Hex())
	if stored == nil {
		t.Fatal("supplier profile must persist without documents")
	}
	if stored.ContractType != models.ContractTypeNone {
		t.Errorf("contractType = %s, want NO_CONTRACT default", stored.ContractType)
	}
	if len(publisher.tasks) != 0 {
		t.Errorf("published %d tasks, want 0", len(publisher.tasks))
	}
}

func TestOnboardSupplierUploadFailureSkipsFile(t *testing.T) {
	store := newFakeSupplierStore()
	uploader := &fakeUploader{failFor: "logs.pdf"}
	publisher := &fakePublisher{}
	svc := NewOnboardingService(store, newFakeUserStore(), uploader, publisher, testObjectKey)

	created, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Flaky"), []UploadedFile{
		testFile("coi", "certificate.pdf"),
		testFile("oshaLogs", "logs.pdf"),
	})
	if err != nil {
		t.Fatalf("failed upload must not fail onboarding: %v", err)
	}

	stored := store.get(created.ID.Hex())
	if !stored.SafetyAndCompliance.SubmittedDocuments[models.DocumentTypeCOI] {
		t.Error("surviving upload not recorded")
	}
	if stored.SafetyAndCompliance.SubmittedDocuments[models.DocumentTypeOSHALog] {
		t.Error("failed upload must not be recorded as submitted")
	}
	if len(publisher.tasks) != 1 {
		t.Errorf("published %d tasks, want 1 for the surviving upload", len(publisher.tasks))
	}
}

func TestOnboardSupplierUnknownFieldSkipped(t *testing.T) {
	store := newFakeSupplierStore()
	publisher := &fakePublisher{}
	svc := NewOnboardingService(store, newFakeUserStore(), &fakeUploader{}, publisher, testObjectKey)

	created, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Odd"), []UploadedFile{
		testFile("resume", "resume.pdf"),
	})
	if err != nil {
		t.Fatalf("OnboardSupplier: %v", err)
	}

	stored := store.get(created.ID.Hex())
	if len(stored.SafetyAndCompliance.SubmittedDocuments) != 0 {
		t.Error("unclassifiable upload must not be recorded")
	}
	if len(publisher.tasks) != 0 {
		t.Error("unclassifiable upload must not enqueue validation")
	}
}

func TestOnboardSupplierLinksContactAccount(t *testing.T) {
	store := newFakeSupplierStore()
	users := newFakeUserStore()
	users.users["contact@acme.test"] = &models.User{Email: "contact@acme.test", Name: "Contact"}
	svc := NewOnboardingService(store, users, &fakeUploader{}, &fakePublisher{}, testObjectKey)

	if _, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Acme"), nil); err != nil {
		t.Fatalf("OnboardSupplier: %v", err)
	}

	linked := users.users["contact@acme.test"]
	if linked.OrganizationName != "Acme" {
		t.Errorf("organizationName = %q, want Acme", linked.OrganizationName)
	}
}

func TestOnboardSupplierSurvivesMissingAccount(t *testing.T) {
	svc := NewOnboardingService(newFakeSupplierStore(), newFakeUserStore(), &fakeUploader{}, &fakePublisher{}, testObjectKey)

	if _, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Nobody"), nil); err != nil {
		t.Fatalf("missing contact account must be advisory: %v", err)
	}
}

func TestOnboardSupplierRetriesVersionConflict(t *testing.T) {
	store := newFakeSupplierStore()
	store.conflicts = 1
	svc := NewOnboardingService(store, newFakeUserStore(), &fakeUploader{}, &fakePublisher{}, testObjectKey)

	created, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Busy"), []UploadedFile{
		testFile("coi", "certificate.pdf"),
	})
	if err != nil {
		t.Fatalf("OnboardSupplier: %v", err)
	}

	stored := store.get(created.ID.Hex())
	if !stored.SafetyAndCompliance.SubmittedDocuments[models.DocumentTypeCOI] {
		t.Error("submission lost across version conflict retry")
	}
	if store.updates < 2 {
		t.Errorf("updates = %d, want a retry after the conflict", store.updates)
	}
}

func TestOnboardSupplierPublishFailureIsAdvisory(t *testing.T) {
	store := newFakeSupplierStore()
	publisher := &fakePublisher{failure: errors.New("nats down")}
	svc := NewOnboardingService(store, newFakeUserStore(), &fakeUploader{}, publisher, testObjectKey)

	created, err := svc.OnboardSupplier(context.Background(), newSupplierPayload("Queued"), []UploadedFile{
		testFile("coi", "certificate.pdf"),
	})
	if err != nil {
		t.Fatalf("publish failure must not fail onboarding: %v", err)
	}
	if stored := store.get(created.ID.Hex()); !stored.SafetyAndCompliance.SubmittedDocuments[models.DocumentTypeCOI] {
		t.Error("submission must persist even when the queue is down")
	}
}
