package model

import "time"

// PdfDocument is a structured case document as served by the upstream
// latest-pdf call (or fabricated by the mock aggregator). Content holds the
// document body as plain text; the renderer turns it into PDF bytes.
type PdfDocument struct {
	ID           int64     `json:"id"`
	CaseID       string    `json:"caseId"`
	DocumentName string    `json:"documentName"`
	DocumentType string    `json:"documentType"`
	FileName     string    `json:"fileName"`
	Content      string    `json:"content"`
	UploadDate   time.Time `json:"uploadDate"`
	UploadedBy   string    `json:"uploadedBy"`
	Status       string    `json:"status"`
}
