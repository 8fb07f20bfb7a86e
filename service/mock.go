package service

import (
	"context"
	"time"

	"github.com/kiranjugdar/security-clearance-tracker-api/model"
	"github.com/kiranjugdar/security-clearance-tracker-api/pkg/logger"
)

// MockAggregator is a fixture-backed CaseAggregator for local development and
// testing. It fabricates deterministic upstream responses but still runs the
// real selection logic and the same concurrent fork-join as the live
// aggregator, so boundary behavior is identical in both modes.
type MockAggregator struct{}

func NewMockAggregator() *MockAggregator {
	return &MockAggregator{}
}

func (m *MockAggregator) GetCaseHistory(ctx context.Context, subjectID string) (*model.CombinedCaseView, error) {
	logger.Info(ctx, "mock: starting combined case history retrieval", "subject_id", subjectID)

	caseList := m.mockCaseList(subjectID)

	selectedCaseID, err := SelectInProgress(caseList.Cases)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "mock: selected first in-progress case", "case_id", selectedCaseID)

	details, history := m.mockDetailsAndHistory(selectedCaseID)

	return &model.CombinedCaseView{
		CasesList:      caseList,
		CaseDetails:    details,
		CaseHistory:    history,
		SelectedCaseID: selectedCaseID,
	}, nil
}

func (m *MockAggregator) GetCaseDetailsAndHistory(ctx context.Context, caseID string) (*model.CaseDetailsAndHistory, error) {
	logger.Info(ctx, "mock: retrieving case details and history", "case_id", caseID)

	details, history := m.mockDetailsAndHistory(caseID)

	return &model.CaseDetailsAndHistory{
		CaseID:      caseID,
		CaseDetails: details,
		CaseHistory: history,
	}, nil
}

func (m *MockAggregator) GetLatestPDF(ctx context.Context, caseID string) (*model.PdfDocument, error) {
	logger.Info(ctx, "mock: retrieving latest PDF document", "case_id", caseID)
	return m.mockPdfDocument(caseID), nil
}

// mockDetailsAndHistory fabricates both fixtures through the same fork-join
// the live aggregator uses, to keep the two code paths behaviorally aligned.
func (m *MockAggregator) mockDetailsAndHistory(caseID string) (model.CaseDetails, *model.CaseHistory) {
	detailsCh := make(chan model.CaseDetails, 1)
	historyCh := make(chan *model.CaseHistory, 1)

	go func() { detailsCh <- m.mockCaseDetails(caseID) }()
	go func() { historyCh <- m.mockCaseHistory(caseID) }()

	return <-detailsCh, <-historyCh
}

// mockCaseList is five cases with varied statuses. Exactly two are
// "In Progress"; the first-listed one is the expected selection, which also
// forces the selector to be exercised rather than short-circuited.
func (m *MockAggregator) mockCaseList(subjectID string) *model.CaseList {
	cases := []model.CaseSummary{
		{
			NBISCaseID:         "25092CASE1329752",
			DISAStatus:         "In Progress",
			SubjectID:          "272ad768-ea92-4972-a8a5-2c270fdddd33",
			CreateDateTime:     "2025-04-02T17:20:19.943Z",
			UpdateDateTime:     "2025-07-18T17:06:45.517Z",
			SFArchivalPDFExist: "Yes",
		},
		{
			NBISCaseID:         "25092CASE1329753",
			DISAStatus:         "Pending Investigation",
			SubjectID:          "272ad768-ea92-4972-a8a5-2c270fdddd34",
			CreateDateTime:     "2025-04-03T09:15:00.123Z",
			UpdateDateTime:     "2025-07-19T12:30:00.456Z",
			SFArchivalPDFExist: "Yes",
		},
		{
			NBISCaseID:         "25092CASE1329754",
			DISAStatus:         "Review - eApp Received",
			SubjectID:          "272ad768-ea92-4972-a8a5-2c270fdddd35",
			CreateDateTime:     "2025-04-04T14:30:00.789Z",
			UpdateDateTime:     "2025-07-20T16:45:00.123Z",
			SFArchivalPDFExist: "No",
		},
		{
			NBISCaseID:         "25092CASE1329755",
			DISAStatus:         "In Progress",
			SubjectID:          "272ad768-ea92-4972-a8a5-2c270fdddd36",
			CreateDateTime:     "2025-04-05T08:00:00.456Z",
			UpdateDateTime:     "2025-07-21T09:30:00.789Z",
			SFArchivalPDFExist: "Yes",
		},
		{
			NBISCaseID:         "25092CASE1329756",
			DISAStatus:         "Completed",
			SubjectID:          "272ad768-ea92-4972-a8a5-2c270fdddd37",
			CreateDateTime:     "2025-04-06T11:45:00.123Z",
			UpdateDateTime:     "2025-07-22T14:15:00.456Z",
			SFArchivalPDFExist: "Yes",
		},
	}

	return &model.CaseList{
		Cases:    cases,
		Metadata: model.CaseListMetadata{TotalCases: len(cases)},
	}
}

// mockCaseDetails mirrors the upstream pyWorkPage work-item shape.
func (m *MockAggregator) mockCaseDetails(caseID string) model.CaseDetails {
	return model.CaseDetails{
		"pyWorkPage": map[string]any{
			"pzInsKey":           "dcas884617ORG1121PVQABC",
			"DISAStatus":         "Review - eApp Received",
			"SubjectID":          "272ad768-ea92-4972-a8a5-2c270fdddd33",
			"NBISCaseID":         caseID,
			"pxCreateDateTime":   "2025-04-02T17:20:19.943Z",
			"pxCreateOpName":     "System",
			"pxUpdateDateTime":   "2025-07-18T17:06:45.517Z",
			"pxUpdateOpName":     "System",
			"Organization":       "Example Org",
			"OrganizationPath":   "/Example/Org/Path",
			"Priority":           "High",
			"FormType":           "PVQ-A-B-C",
			"FormVersion":        "2023",
			"EAppAccountInfo": map[string]any{
				"AccountStatus": "Initiated/Untouched by Applicant",
				"FormStatus":    "Released to Agency",
			},
			"PIPSStatusCheckResponse": map[string]any{
				"Deceased":      "N",
				"SubjectActive": "Y",
				"CurrentStatus": map[string]any{
					"Code":        "RLTP",
					"Description": "Released to Parent Agency",
				},
			},
			"InvestigationStatus": "Completed",
			"InvestigationDate":   "2025-07-20",
			"SFArchivalPDFExist":  "Yes",
		},
	}
}

func (m *MockAggregator) mockCaseHistory(caseID string) *model.CaseHistory {
	return &model.CaseHistory{
		NBISCaseID: caseID,
		History: []model.CaseHistoryEntry{
			{
				Time:        "2025-06-06T10:00:00Z",
				Description: "Agency Initiated Investigation Request.",
				PerformedBy: "System",
			},
			{
				Time:        "2025-06-10T14:30:00Z",
				Description: "e-QIP data received.",
				PerformedBy: "e-QIP Integration",
			},
			{
				Time:        "2025-07-18T16:00:00Z",
				Description: "Case status updated to 'Review - eApp Received'.",
				PerformedBy: "System",
			},
		},
	}
}

func (m *MockAggregator) mockPdfDocument(caseID string) *model.PdfDocument {
	return &model.PdfDocument{
		ID:           1,
		CaseID:       caseID,
		DocumentName: "Security Clearance Application Form",
		DocumentType: "Application",
		FileName:     "SF-86_" + caseID + ".pdf",
		Content: "SECURITY CLEARANCE APPLICATION FORM\n\n" +
			"Case ID: " + caseID + "\n\n" +
			"SECTION 1: PERSONAL INFORMATION\n" +
			"Full Name: John A. Smith\n" +
			"Date of Birth: 01/15/1985\n" +
			"SSN: XXX-XX-1234\n" +
			"Place of Birth: Washington, DC\n\n" +
			"SECTION 2: EMPLOYMENT HISTORY\n" +
			"Current Employer: Defense Contractor Inc.\n" +
			"Position: Software Engineer\n" +
			"Start Date: 03/2020\n" +
			"Security Officer: Jane Doe\n\n" +
			"SECTION 3: EDUCATION\n" +
			"University: Georgetown University\n" +
			"Degree: Bachelor of Science in Computer Science\n" +
			"Graduation: May 2007\n\n" +
			"SECTION 4: REFERENCES\n" +
			"1. Michael Johnson - Former Supervisor\n" +
			"2. Sarah Williams - Colleague\n" +
			"3. Robert Brown - Academic Reference",
		UploadDate: time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC),
		UploadedBy: "John Smith",
		Status:     "submitted",
	}
}
