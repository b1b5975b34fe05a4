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

type supervisionService interface {
	List(ctx context.Context, actor *models.Actor, req dto.SupervisionListRequest) ([]dto.SupervisionView, int, error)
	Faculty(ctx context.Context, actor *models.Actor, search string) ([]dto.FacultyView, error)
	Save(ctx context.Context, actor *models.Actor, req dto.SaveSupervisionRequest) (bool, error)
	Unsupervise(ctx context.Context, actor *models.Actor, req dto.UnsuperviseRequest) error
}

// SupervisionHandler exposes the supervisor endpoints.
type SupervisionHandler struct {
	service  supervisionService
	exporter *service.ExportService
}

// NewSupervisionHandler builds a new handler.
func NewSupervisionHandler(svc supervisionService, exporter *service.ExportService) *SupervisionHandler {
	return &SupervisionHandler{service: svc, exporter: exporter}
}

// List godoc
// @Summary List supervised students
// @Tags Supervisions
// @Produce json
// @Param search query string false "Student, thesis title or funding source contains"
// @Param sort query string false "Sort key (default joining)"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /supervisions [get]
func (h *SupervisionHandler) List(c *gin.Context) {
	items, total, ok := h.list(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, items, response.ListMeta(total, len(items)))
}

// Export godoc
// @Summary Export supervised students
// @Tags Supervisions
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /supervisions/export [get]
func (h *SupervisionHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	items, _, ok := h.list(c)
	if !ok {
		return
	}
	file, err := service.ExportRecords(h.exporter, format, "Supervised Students", items, service.SupervisionColumns)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Faculty godoc
// @Summary List faculty for thesis committees
// @Tags Supervisions
// @Produce json
// @Param search query string false "Name or email contains"
// @Success 200 {object} response.Envelope
// @Router /supervisions/faculty [get]
func (h *SupervisionHandler) Faculty(c *gin.Context) {
	items, err := h.service.Faculty(c.Request.Context(), actorFromContext(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Save godoc
// @Summary Supervise a student
// @Description Creates the supervision, or updates it when the student is already supervised by the caller.
// @Tags Supervisions
// @Accept json
// @Produce json
// @Param payload body dto.SaveSupervisionRequest true "Supervision payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /supervisions [post]
func (h *SupervisionHandler) Save(c *gin.Context) {
	var req dto.SaveSupervisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid supervision payload"))
		return
	}
	created, err := h.service.Save(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload := gin.H{"student_id": req.StudentID, "created": created}
	if created {
		response.Created(c, payload)
		return
	}
	response.JSON(c, http.StatusOK, payload, nil)
}

// Unsupervise godoc
// @Summary Stop supervising a student
// @Tags Supervisions
// @Accept json
// @Produce json
// @Param payload body dto.UnsuperviseRequest true "Student to release"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /supervisions/unsupervise [delete]
func (h *SupervisionHandler) Unsupervise(c *gin.Context) {
	var req dto.UnsuperviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unsupervise payload"))
		return
	}
	if err := h.service.Unsupervise(c.Request.Context(), actorFromContext(c), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true}, nil)
}

func (h *SupervisionHandler) list(c *gin.Context) ([]dto.SupervisionView, int, bool) {
	var req dto.SupervisionListRequest
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
