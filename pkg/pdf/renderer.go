package pdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/kiranjugdar/security-clearance-tracker-api/model"
)

var allCapsHeader = regexp.MustCompile(`^[A-Z\s]+:?$`)

// Renderer converts a structured case document into downloadable PDF bytes.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render lays out the document name, its metadata and the content body. Lines
// that look like section headers are emphasized; everything else is body text.
func (r *Renderer) Render(doc *model.PdfDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, doc.DocumentName, "", "C", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	meta := []string{
		"Document Type: " + doc.DocumentType,
		"Case ID: " + doc.CaseID,
		"File Name: " + doc.FileName,
	}
	if !doc.UploadDate.IsZero() {
		meta = append(meta, "Upload Date: "+doc.UploadDate.Format("2006-01-02 15:04:05"))
	}
	if doc.UploadedBy != "" {
		meta = append(meta, "Uploaded By: "+doc.UploadedBy)
	}
	meta = append(meta, "Status: "+doc.Status)
	for _, line := range meta {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 5, strings.Repeat("_", 80), "", "L", false)
	pdf.Ln(2)

	for _, line := range strings.Split(doc.Content, "\n") {
		switch {
		case strings.TrimSpace(line) == "":
			pdf.SetFont("Helvetica", "", 8)
			pdf.MultiCell(0, 3, " ", "", "L", false)
		case allCapsHeader.MatchString(strings.TrimSpace(line)):
			pdf.SetFont("Helvetica", "B", 14)
			pdf.MultiCell(0, 7, line, "", "L", false)
		case strings.HasPrefix(line, "SECTION ") ||
			strings.HasPrefix(line, "CONCLUSION") ||
			strings.HasPrefix(line, "FINDINGS"):
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 6, line, "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		slog.Error("failed to render PDF", "document", doc.DocumentName, "case_id", doc.CaseID, "error", err)
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	slog.Info("generated PDF", "document", doc.DocumentName, "case_id", doc.CaseID, "bytes", buf.Len())
	return buf.Bytes(), nil
}
