package service

import (
	"context"

	"github.com/kiranjugdar/security-clearance-tracker-api/model"
	"github.com/kiranjugdar/security-clearance-tracker-api/pkg/logger"
)

// CaseAggregator is the orchestration contract consumed by the HTTP handlers.
// The live implementation fans out to the upstream case-management API; the
// mock implementation serves fixtures under the same selection and error
// semantics, so the two are interchangeable at process start.
type CaseAggregator interface {
	// GetCaseHistory fetches the subject's case list, selects the first
	// in-progress case and returns the combined view of list, details and
	// history for that case.
	GetCaseHistory(ctx context.Context, subjectID string) (*model.CombinedCaseView, error)

	// GetCaseDetailsAndHistory returns details and history for a known case id.
	GetCaseDetailsAndHistory(ctx context.Context, caseID string) (*model.CaseDetailsAndHistory, error)

	// GetLatestPDF returns the latest archival document for a case, or a
	// NotFound error when the case has no document.
	GetLatestPDF(ctx context.Context, caseID string) (*model.PdfDocument, error)
}

// Aggregator is the network-backed CaseAggregator.
type Aggregator struct {
	client *UpstreamClient
}

func NewAggregator(client *UpstreamClient) *Aggregator {
	return &Aggregator{client: client}
}

// GetCaseHistory implements the combined case-history flow: case list, then
// selection, then a concurrent details+history fetch for the selected case.
// Every sub-call failure aborts the whole flow; there is no partial response.
func (a *Aggregator) GetCaseHistory(ctx context.Context, subjectID string) (*model.CombinedCaseView, error) {
	logger.Info(ctx, "starting combined case history retrieval", "subject_id", subjectID)

	caseList, err := a.client.FetchCaseList(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "retrieved case list", "subject_id", subjectID, "total_cases", len(caseList.Cases))

	selectedCaseID, err := SelectInProgress(caseList.Cases)
	if err != nil {
		logger.Warn(ctx, "no in-progress case for subject", "subject_id", subjectID, "total_cases", len(caseList.Cases))
		return nil, err
	}
	logger.Info(ctx, "selected first in-progress case", "case_id", selectedCaseID)

	details, history, err := a.fetchDetailsAndHistory(ctx, selectedCaseID)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "completed combined case history retrieval",
		"subject_id", subjectID,
		"case_id", selectedCaseID,
		"history_items", len(history.History),
	)

	return &model.CombinedCaseView{
		CasesList:      caseList,
		CaseDetails:    details,
		CaseHistory:    history,
		SelectedCaseID: selectedCaseID,
	}, nil
}

// GetCaseDetailsAndHistory fetches details and history for caseID concurrently
// and combines them.
func (a *Aggregator) GetCaseDetailsAndHistory(ctx context.Context, caseID string) (*model.CaseDetailsAndHistory, error) {
	logger.Info(ctx, "starting case details and history retrieval", "case_id", caseID)

	details, history, err := a.fetchDetailsAndHistory(ctx, caseID)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "completed case details and history retrieval",
		"case_id", caseID,
		"history_items", len(history.History),
	)

	return &model.CaseDetailsAndHistory{
		CaseID:      caseID,
		CaseDetails: details,
		CaseHistory: history,
	}, nil
}

// GetLatestPDF returns the latest archival document for caseID. A missing
// document is a NotFound condition, never conflated with an upstream failure.
func (a *Aggregator) GetLatestPDF(ctx context.Context, caseID string) (*model.PdfDocument, error) {
	logger.Info(ctx, "retrieving latest PDF document", "case_id", caseID)

	doc, err := a.client.FetchLatestPDF(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		logger.Warn(ctx, "no PDF document for case", "case_id", caseID)
		return nil, model.NotFoundError("No PDF found for case: " + caseID)
	}

	logger.Info(ctx, "retrieved latest PDF document", "case_id", caseID, "file_name", doc.FileName)
	return doc, nil
}

type detailsResult struct {
	details model.CaseDetails
	err     error
}

type historyResult struct {
	history *model.CaseHistory
	err     error
}

// fetchDetailsAndHistory issues the details and history calls concurrently and
// joins on both. Both calls are started before either result is awaited. On a
// double failure the details error wins; the sibling call is never cancelled,
// its result is simply discarded.
func (a *Aggregator) fetchDetailsAndHistory(ctx context.Context, caseID string) (model.CaseDetails, *model.CaseHistory, error) {
	detailsCh := make(chan detailsResult, 1)
	historyCh := make(chan historyResult, 1)

	go func() {
		details, err := a.client.FetchCaseDetails(ctx, caseID)
		detailsCh <- detailsResult{details: details, err: err}
	}()
	go func() {
		history, err := a.client.FetchCaseHistory(ctx, caseID)
		historyCh <- historyResult{history: history, err: err}
	}()

	dr := <-detailsCh
	hr := <-historyCh

	if dr.err != nil {
		return nil, nil, dr.err
	}
	if hr.err != nil {
		return nil, nil, hr.err
	}
	return dr.details, hr.history, nil
}
