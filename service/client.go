package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kiranjugdar/security-clearance-tracker-api/config"
	"github.com/kiranjugdar/security-clearance-tracker-api/model"
)

// UpstreamClient issues GET calls against the v1 case-management API. All
// failures surface as model.AppError with the Upstream kind; the underlying
// transport error is wrapped, never leaked as-is. Calls are idempotent GETs
// with no retries.
type UpstreamClient struct {
	config     *config.UpstreamConfig
	httpClient *http.Client
}

func NewUpstreamClient(cfg *config.UpstreamConfig) *UpstreamClient {
	return &UpstreamClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// FetchCaseList retrieves all cases for a subject persona object id.
func (c *UpstreamClient) FetchCaseList(ctx context.Context, subjectID string) (*model.CaseList, error) {
	endpoint := fmt.Sprintf("%s/api/v1/cases?subjectPersonaObjectId=%s", c.config.BaseURL, url.QueryEscape(subjectID))

	var caseList model.CaseList
	if err := c.getJSON(ctx, endpoint, &caseList); err != nil {
		return nil, model.UpstreamError("External service call failed for cases list", err)
	}
	return &caseList, nil
}

// FetchCaseDetails retrieves the work-item record for a case. The body is
// decoded into an opaque document and forwarded without interpretation.
func (c *UpstreamClient) FetchCaseDetails(ctx context.Context, caseID string) (model.CaseDetails, error) {
	endpoint := fmt.Sprintf("%s/api/v1/cases/%s", c.config.BaseURL, url.PathEscape(caseID))

	var details model.CaseDetails
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, model.UpstreamError("External service call failed for case details", err)
	}
	return details, nil
}

// FetchCaseHistory retrieves the history entries for a case, in upstream order.
func (c *UpstreamClient) FetchCaseHistory(ctx context.Context, caseID string) (*model.CaseHistory, error) {
	endpoint := fmt.Sprintf("%s/api/v1/cases/%s/history", c.config.BaseURL, url.PathEscape(caseID))

	var history model.CaseHistory
	if err := c.getJSON(ctx, endpoint, &history); err != nil {
		return nil, model.UpstreamError("External service call failed for case history", err)
	}
	return &history, nil
}

// FetchLatestPDF retrieves the latest archival document for a case. An empty
// response body means no document exists; that is reported as (nil, nil) so
// the aggregator can distinguish not-found from an upstream failure.
func (c *UpstreamClient) FetchLatestPDF(ctx context.Context, caseID string) (*model.PdfDocument, error) {
	endpoint := fmt.Sprintf("%s/api/latest-pdf?caseId=%s", c.config.BaseURL, url.QueryEscape(caseID))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, model.UpstreamError("External service call failed for latest PDF", err)
	}
	if len(body) == 0 || string(body) == "null" {
		return nil, nil
	}

	var doc model.PdfDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, model.UpstreamError("External service call failed for latest PDF", fmt.Errorf("failed to parse response: %w", err))
	}
	return &doc, nil
}

func (c *UpstreamClient) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *UpstreamClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	return body, nil
}
