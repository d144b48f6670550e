package util

import (
	"bytes"
	"testing"
)

func TestValidateMimeTypePDF(t *testing.T) {
	pdf := []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")

	mimeType, err := ValidateMimeType(bytes.NewReader(pdf), []string{"application/pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !IsPDF(mimeType) {
		t.Errorf("detected %q, want application/pdf", mimeType)
	}
}

func TestValidateMimeTypeRejectsOther(t *testing.T) {
	if _, err := ValidateMimeType(bytes.NewReader([]byte("plain text, not a pdf")), []string{"application/pdf"}); err == nil {
		t.Error("text content should be rejected")
	}
	if _, err := ValidateMimeType(bytes.NewReader([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}), []string{"application/pdf"}); err == nil {
		t.Error("png content should be rejected")
	}
}
