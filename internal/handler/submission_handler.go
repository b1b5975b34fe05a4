package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lab-portal-api/internal/dto"
	"github.com/noah-isme/lab-portal-api/internal/models"
	"github.com/noah-isme/lab-portal-api/internal/service"
	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
	"github.com/noah-isme/lab-portal-api/pkg/response"
)

type submissionService interface {
	List(ctx context.Context, actor *models.Actor, req dto.SubmissionListRequest) ([]dto.SubmissionView, int, error)
	UpdateVenue(ctx context.Context, actor *models.Actor, id string, req dto.UpdateSubmissionVenueRequest) (*dto.SubmissionView, error)
	VenueSuggestions(ctx context.Context, prefix string) ([]string, error)
}

// SubmissionHandler exposes the under-review submissions endpoints.
type SubmissionHandler struct {
	service  submissionService
	exporter *service.ExportService
}

// NewSubmissionHandler builds a new handler.
func NewSubmissionHandler(svc submissionService, exporter *service.ExportService) *SubmissionHandler {
	return &SubmissionHandler{service: svc, exporter: exporter}
}

// List godoc
// @Summary List submissions under review
// @Tags Submissions
// @Produce json
// @Param search query string false "Free text over project, lead author and venue"
// @Param name query string false "Lead author contains"
// @Param project query string false "Project name contains"
// @Param venue query string false "Venue contains"
// @Param sort query string false "Sort key, e.g. lead_author.name or next_deadline"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	items, total, ok := h.list(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, items, response.ListMeta(total, len(items)))
}

// Export godoc
// @Summary Export submissions under review
// @Tags Submissions
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /submissions/export [get]
func (h *SubmissionHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	items, _, ok := h.list(c)
	if !ok {
		return
	}
	file, err := service.ExportRecords(h.exporter, format, "Submissions", items, service.SubmissionColumns)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// UpdateVenue godoc
// @Summary Change the venue of a submission
// @Description Allowed for the project's faculty, its lead author and team members.
// @Tags Submissions
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param payload body dto.UpdateSubmissionVenueRequest true "New venue"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /submissions/{id}/venue [put]
func (h *SubmissionHandler) UpdateVenue(c *gin.Context) {
	var req dto.UpdateSubmissionVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid venue payload"))
		return
	}
	view, err := h.service.UpdateVenue(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// VenueSuggestions godoc
// @Summary Suggest venue names
// @Tags Submissions
// @Produce json
// @Param q query string false "Text the venue name should contain"
// @Success 200 {object} response.Envelope
// @Router /submissions/venue-suggestions [get]
func (h *SubmissionHandler) VenueSuggestions(c *gin.Context) {
	names, err := h.service.VenueSuggestions(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, names, nil)
}

func (h *SubmissionHandler) list(c *gin.Context) ([]dto.SubmissionView, int, bool) {
	var req dto.SubmissionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return nil, 0, false
	}
	items, total, err := h.service.List(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return nil, 0, false
	}
	return items, total, true
}
