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

type venueService interface {
	List(ctx context.Context, actor *models.Actor, req dto.VenueListRequest) ([]dto.VenueView, int, error)
	Create(ctx context.Context, actor *models.Actor, req dto.VenueRequest) (*dto.VenueView, error)
	Update(ctx context.Context, actor *models.Actor, id string, req dto.VenueRequest) (*dto.VenueView, error)
	Delete(ctx context.Context, actor *models.Actor, id string) error
}

// VenueHandler exposes conference venue endpoints.
type VenueHandler struct {
	service  venueService
	exporter *service.ExportService
}

// NewVenueHandler builds a new handler.
func NewVenueHandler(svc venueService, exporter *service.ExportService) *VenueHandler {
	return &VenueHandler{service: svc, exporter: exporter}
}

// List godoc
// @Summary List venues
// @Description Deadlines are shifted into the portal's canonical timezone. Inactive venues are hidden unless all=true.
// @Tags Venues
// @Produce json
// @Param search query string false "Venue name or location contains"
// @Param all query bool false "Include inactive venues"
// @Param sort query string false "Sort key, e.g. paper_submission"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /venues [get]
func (h *VenueHandler) List(c *gin.Context) {
	items, total, ok := h.list(c)
	if !ok {
		return
	}
	response.JSON(c, http.StatusOK, items, response.ListMeta(total, len(items)))
}

// Export godoc
// @Summary Export venues
// @Tags Venues
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /venues/export [get]
func (h *VenueHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	items, _, ok := h.list(c)
	if !ok {
		return
	}
	file, err := service.ExportRecords(h.exporter, format, "Venues", items, service.VenueColumns)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Create godoc
// @Summary Create a venue
// @Tags Venues
// @Accept json
// @Produce json
// @Param payload body dto.VenueRequest true "Venue payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /venues [post]
func (h *VenueHandler) Create(c *gin.Context) {
	var req dto.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid venue payload"))
		return
	}
	view, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Update godoc
// @Summary Update a venue
// @Description Allowed for the owner and for phd students listed in the venue's view list.
// @Tags Venues
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param payload body dto.VenueRequest true "Venue payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /venues/{id} [put]
func (h *VenueHandler) Update(c *gin.Context) {
	var req dto.VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid venue payload"))
		return
	}
	view, err := h.service.Update(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Delete godoc
// @Summary Delete a venue
// @Tags Venues
// @Param id path string true "Venue ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /venues/{id} [delete]
func (h *VenueHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *VenueHandler) list(c *gin.Context) ([]dto.VenueView, int, bool) {
	var req dto.VenueListRequest
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
