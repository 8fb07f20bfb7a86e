package handler

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kiranjugdar/security-clearance-tracker-api/middleware"
	"github.com/kiranjugdar/security-clearance-tracker-api/model"
	"github.com/kiranjugdar/security-clearance-tracker-api/pkg/logger"
	"github.com/kiranjugdar/security-clearance-tracker-api/pkg/pdf"
	"github.com/kiranjugdar/security-clearance-tracker-api/service"
)

// Case ids are upstream-issued NBIS identifiers, e.g. 25092CASE1329752.
var caseIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

type ClearanceHandler struct {
	aggregator service.CaseAggregator
	renderer   *pdf.Renderer
}

func NewClearanceHandler(aggregator service.CaseAggregator, renderer *pdf.Renderer) *ClearanceHandler {
	return &ClearanceHandler{
		aggregator: aggregator,
		renderer:   renderer,
	}
}

// GetCaseHistory returns the combined case view for a subject: full case
// list, plus details and history of the first in-progress case.
func (h *ClearanceHandler) GetCaseHistory(c *gin.Context) {
	subjectID := c.Query("subjectPersonaObjectId")
	if _, err := uuid.Parse(subjectID); err != nil {
		h.respondError(c, model.ValidationError("subjectPersonaObjectId must be a valid identifier"))
		return
	}

	// Non-admin callers may only look at their own cases.
	if !middleware.HasRole(c, middleware.RoleAdmin) && subjectID != middleware.GetSubjectID(c) {
		logger.Warn(c.Request.Context(), "subject id mismatch for non-admin caller",
			"requested_subject_id", subjectID)
		c.JSON(http.StatusForbidden,
			model.NewErrorResponse(http.StatusForbidden, "Not authorized to access this subject", c.Request.URL.Path))
		return
	}

	combined, err := h.aggregator.GetCaseHistory(c.Request.Context(), subjectID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, combined)
}

// GetCaseDetailsAndHistory returns details and history for a known case id.
func (h *ClearanceHandler) GetCaseDetailsAndHistory(c *gin.Context) {
	caseID := c.Param("caseId")
	if !caseIDPattern.MatchString(caseID) {
		h.respondError(c, model.ValidationError("caseId must be a valid case identifier"))
		return
	}

	response, err := h.aggregator.GetCaseDetailsAndHistory(c.Request.Context(), caseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DownloadPdf streams the latest archival document of a case as a PDF
// attachment, or a 404 envelope when the case has none.
func (h *ClearanceHandler) DownloadPdf(c *gin.Context) {
	caseID := c.Param("caseId")
	if !caseIDPattern.MatchString(caseID) {
		h.respondError(c, model.ValidationError("caseId must be a valid case identifier"))
		return
	}

	doc, err := h.aggregator.GetLatestPDF(c.Request.Context(), caseID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pdfBytes, err := h.renderer.Render(doc)
	if err != nil {
		h.respondError(c, err)
		return
	}

	fileName := doc.FileName
	if fileName == "" {
		fileName = caseID + ".pdf"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// respondError maps the service error taxonomy to transport statuses. Only
// the typed code and message reach the body; wrapped causes stay in the log.
func (h *ClearanceHandler) respondError(c *gin.Context, err error) {
	appErr := model.AsAppError(err)
	path := c.Request.URL.Path

	var status int
	var message string
	switch appErr.Kind {
	case model.KindValidation:
		status = http.StatusBadRequest
		message = appErr.Message
	case model.KindNotFound:
		status = http.StatusNotFound
		message = appErr.Message
	case model.KindUpstream, model.KindNoEligibleCase:
		status = http.StatusInternalServerError
		message = "External service failed: " + appErr.Message
	default:
		status = http.StatusInternalServerError
		message = "System error occurred"
	}

	logger.Error(c.Request.Context(), "request failed",
		"status", status,
		"path", path,
		"error", appErr.Error(),
	)

	c.JSON(status, model.NewErrorResponse(appErr.Code, message, path))
}
