package documents

import (
	"testing"

	"supplier-management-api-server/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  models.DocumentType
		ok    bool
	}{
		{"form field coi", "coi", models.DocumentTypeCOI, true},
		{"uppercase title", "INSURANCE CERTIFICATE 2024", models.DocumentTypeCOI, true},
		{"certificate of insurance", "Certificate of Insurance", models.DocumentTypeCOI, true},
		{"form field oshaLogs", "oshaLogs", models.DocumentTypeOSHALog, true},
		{"osha title", "OSHA 300 Log", models.DocumentTypeOSHALog, true},
		{"form field bankInfo", "bankInfo", models.DocumentTypeBankInfo, true},
		{"bank title", "Bank Account Details", models.DocumentTypeBankInfo, true},
		{"unknown", "tax return", "", false},
		{"empty", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Classify(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Classify(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name       string
		title      string
		expiryDate string
		wantType   models.DocumentType
		wantKnown  bool
		wantValid  bool
		wantReason string
	}{
		{"coi with expiry", "Certificate of Insurance", "2025-06-01", models.DocumentTypeCOI, true, true, "Valid COI document"},
		{"coi empty expiry", "Certificate of Insurance", "", models.DocumentTypeCOI, true, false, "Missing expiry date"},
		{"coi blank expiry", "Certificate of Insurance", "   ", models.DocumentTypeCOI, true, false, "Missing expiry date"},
		{"coi any expiry value", "insurance", "n/a", models.DocumentTypeCOI, true, true, "Valid COI document"},
		{"osha always valid", "OSHA Log 2023", "", models.DocumentTypeOSHALog, true, true, "Valid OSHA Log document"},
		{"bank always valid", "Bank Info", "", models.DocumentTypeBankInfo, true, true, "Valid Bank Info document"},
		{"unknown title", "W-9 Form", "2025-01-01", "", false, false, "Unknown document type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Validate(tc.title, tc.expiryDate)
			if got.Type != tc.wantType || got.Known != tc.wantKnown || got.Valid != tc.wantValid || got.Reason != tc.wantReason {
				t.Fatalf("Validate(%q, %q) = %+v", tc.title, tc.expiryDate, got)
			}
		})
	}
}
