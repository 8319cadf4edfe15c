// Package documents classifies uploaded compliance files and validates the
// structured fields extracted from them.
package documents

import (
	"strings"

	"supplier-management-api-server/internal/models"
)

// keywords maps lexical markers to document types. Matching is
// case-insensitive substring containment, so "certificate of insurance"
// is already covered by "insurance".
var keywords = []struct {
	keyword string
	docType models.DocumentType
}{
	{"coi", models.DocumentTypeCOI},
	{"insurance", models.DocumentTypeCOI},
	{"osha", models.DocumentTypeOSHALog},
	{"bank", models.DocumentTypeBankInfo},
}

// Classify maps a multipart form-field name or an extracted document title to
// a DocumentType. The second return value is false when nothing matches;
// callers must treat that as a rejection.
func Classify(fieldNameOrTitle string) (models.DocumentType, bool) {
	normalized := strings.ToLower(fieldNameOrTitle)
	for _, k := range keywords {
		if strings.Contains(normalized, k.keyword) {
			return k.docType, true
		}
	}
	return "", false
}

// ValidationResult is the verdict for a single analyzed document.
type ValidationResult struct {
	Type   models.DocumentType
	Known  bool
	Valid  bool
	Reason string
}

// Validate classifies an extracted title and applies the per-type structural
// checks. A COI must carry a non-blank expiry date; OSHA logs and bank info
// are valid once classified.
func Validate(title, expiryDate string) ValidationResult {
	docType, ok := Classify(title)
	if !ok {
		return ValidationResult{Known: false, Valid: false, Reason: "Unknown document type"}
	}

	switch docType {
	case models.DocumentTypeCOI:
		if strings.TrimSpace(expiryDate) == "" {
			return ValidationResult{Type: docType, Known: true, Valid: false, Reason: "Missing expiry date"}
		}
		return ValidationResult{Type: docType, Known: true, Valid: true, Reason: "Valid COI document"}
	case models.DocumentTypeOSHALog:
		return ValidationResult{Type: docType, Known: true, Valid: true, Reason: "Valid OSHA Log document"}
	default:
		return ValidationResult{Type: docType, Known: true, Valid: true, Reason: "Valid Bank Info document"}
	}
}
