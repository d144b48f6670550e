package service

import (
	"bytes"
	"strings"

	"studyquiz_backend/pkg/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PDFService extracts plain text from uploaded PDFs. It is a fallback for
// uploads too large to send to the model as raw bytes; extraction failure
// degrades to an empty string, never an error.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

func (s *PDFService) ExtractText(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Log.Warn("pdf text extraction failed", zap.Error(err))
		return ""
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}
