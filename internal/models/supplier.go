package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkStatus string

const (
	WorkStatusApproved    WorkStatus = "APPROVED"
	WorkStatusNotApproved WorkStatus = "NOT_APPROVED"
)

type RequirementStatus string

const (
	RequirementStatusPending   RequirementStatus = "PENDING"
	RequirementStatusSubmitted RequirementStatus = "SUBMITTED"
)

type ContractType string

const (
	ContractTypeNone          ContractType = "NO_CONTRACT"
	ContractTypeDirect        ContractType = "DIRECT"
	ContractTypeSubcontracted ContractType = "SUBCONTRACTED"
)

// DocumentType is the closed set of compliance documents a supplier must submit.
type DocumentType string

const (
	DocumentTypeCOI      DocumentType = "COI"
	DocumentTypeOSHALog  DocumentType = "OSHA_LOG"
	DocumentTypeBankInfo DocumentType = "BANK_INFO"
)

// AllDocumentTypes lists every required document type. Requirement and
// work-status transitions are computed against this set.
var AllDocumentTypes = []DocumentType{DocumentTypeCOI, DocumentTypeOSHALog, DocumentTypeBankInfo}

type PrimaryContact struct {
	PrimaryContactEmail string `bson:"primaryContactEmail" json:"primaryContactEmail"`
	PrimaryContactName  string `bson:"primaryContactName" json:"primaryContactName"`
	PrimaryContactPhone string `bson:"primaryContactPhone,omitempty" json:"primaryContactPhone,omitempty"`
}

type SecondaryContact struct {
	SecondaryContactEmail string `bson:"secondaryContactEmail,omitempty" json:"secondaryContactEmail,omitempty"`
	SecondaryContactName  string `bson:"secondaryContactName,omitempty" json:"secondaryContactName,omitempty"`
	SecondaryContactPhone string `bson:"secondaryContactPhone,omitempty" json:"secondaryContactPhone,omitempty"`
}

type ContactInfo struct {
	PrimaryContact   PrimaryContact    `bson:"primaryContact" json:"primaryContact"`
	SecondaryContact *SecondaryContact `bson:"secondaryContact,omitempty" json:"secondaryContact,omitempty"`
}

// SafetyAndCompliance tracks supplier-declared safety ratios plus the state of
// every compliance document. submittedDocuments records that a file of that
// type was uploaded; validatedDocuments records the analysis verdict and is
// the authoritative signal for work approval.
type SafetyAndCompliance struct {
	TRIR               float64               `bson:"trir" json:"trir"`
	EMR                float64               `bson:"emr" json:"emr"`
	COIURL             string                `bson:"coiUrl,omitempty" json:"coiUrl,omitempty"`
	OSHALogsURL        string                `bson:"oshaLogsUrl,omitempty" json:"oshaLogsUrl,omitempty"`
	BankInfoURL        string                `bson:"bankInfoUrl,omitempty" json:"bankInfoUrl,omitempty"`
	SubmittedDocuments map[DocumentType]bool `bson:"submittedDocuments,omitempty" json:"submittedDocuments,omitempty"`
	ValidatedDocuments map[DocumentType]bool `bson:"validatedDocuments,omitempty" json:"validatedDocuments,omitempty"`
}

// DocumentURLs returns the blob URLs recorded so far, in document-type order.
func (s SafetyAndCompliance) DocumentURLs() []string {
	var urls []string
	for _, u := range []string{s.COIURL, s.OSHALogsURL, s.BankInfoURL} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Supplier is the aggregate root of the onboarding and compliance workflow.
// All mutations are whole-entity read-modify-write; Version backs the
// optimistic concurrency check in the repository.
type Supplier struct {
	ID                      primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	SupplierName            string              `bson:"supplierName" json:"supplierName"`
	ContractType            ContractType        `bson:"contractType" json:"contractType"`
	WorkStatus              WorkStatus          `bson:"workStatus" json:"workStatus"`
	RequirementsStatus      RequirementStatus   `bson:"requirementsStatus" json:"requirementsStatus"`
	Services                []string            `bson:"services" json:"services"`
	States                  []string            `bson:"states" json:"states"`
	YearsOfOperation        int                 `bson:"yearsOfOperation" json:"yearsOfOperation"`
	Revenue                 string              `bson:"revenue" json:"revenue"`
	NumberOfEmployees       string              `bson:"numberOfEmployees" json:"numberOfEmployees"`
	ContactInfo             ContactInfo         `bson:"contactInfo" json:"contactInfo"`
	BusinessClassifications map[string]bool     `bson:"businessClassifications" json:"businessClassifications"`
	SafetyAndCompliance     SafetyAndCompliance `bson:"safetyAndCompliance" json:"safetyAndCompliance"`
	IsDiscoverable          bool                `bson:"isDiscoverable" json:"isDiscoverable"`
	Organization            string              `bson:"organization" json:"organization"`
	OnboardingDate          time.Time           `bson:"onboardingDate,omitempty" json:"onboardingDate,omitempty"`
	Version                 int64               `bson:"version" json:"-"`
}

// ApplyDefaults fills the zero-value enum fields on a freshly decoded payload.
func (s *Supplier) ApplyDefaults() {
	if s.ContractType == "" {
		s.ContractType = ContractTypeNone
	}
	if s.WorkStatus == "" {
		s.WorkStatus = WorkStatusNotApproved
	}
	if s.RequirementsStatus == "" {
		s.RequirementsStatus = RequirementStatusPending
	}
	if s.Organization == "" {
		s.Organization = s.SupplierName
	}
	if s.OnboardingDate.IsZero() {
		s.OnboardingDate = time.Now()
	}
}

// AllDocumentsSubmitted reports whether every required type has an upload.
func (s *Supplier) AllDocumentsSubmitted() bool {
	for _, dt := range AllDocumentTypes {
		if _, ok := s.SafetyAndCompliance.SubmittedDocuments[dt]; !ok {
			return false
		}
	}
	return true
}

// AllDocumentsValid reports whether every required type was analyzed and
// found valid.
func (s *Supplier) AllDocumentsValid() bool {
	for _, dt := range AllDocumentTypes {
		if !s.SafetyAndCompliance.ValidatedDocuments[dt] {
			return false
		}
	}
	return true
}
