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

type notificationService interface {
	List(ctx context.Context, actor *models.Actor, req dto.NotificationListRequest) (*dto.NotificationListResult, error)
	Delete(ctx context.Context, actor *models.Actor, id string) error
}

// NotificationHandler exposes the notification table endpoints.
type NotificationHandler struct {
	service  notificationService
	exporter *service.ExportService
}

// NewNotificationHandler builds a new handler.
func NewNotificationHandler(svc notificationService, exporter *service.ExportService) *NotificationHandler {
	return &NotificationHandler{service: svc, exporter: exporter}
}

// List godoc
// @Summary List notifications
// @Description Search, filter and sort the caller's notifications. Undated rows sort last.
// @Tags Notifications
// @Produce json
// @Param search query string false "Free text over message and author"
// @Param type query string false "Exact notification type"
// @Param priority query string false "Exact priority"
// @Param addedBy query string false "Author name contains"
// @Param dueDate query string false "next10days, next20days or expired"
// @Param sort query string false "Sort key (default due_date)"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	result, err := h.service.List(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := response.ListMeta(result.Total, len(result.Items))
	meta["added_by_options"] = result.AddedByFilter
	response.JSON(c, http.StatusOK, result.Items, meta)
}

// Export godoc
// @Summary Export notifications
// @Description Renders the filtered notification list as CSV or PDF.
// @Tags Notifications
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /notifications/export [get]
func (h *NotificationHandler) Export(c *gin.Context) {
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	result, err := h.service.List(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := service.ExportRecords(h.exporter, format, "Notifications", result.Items, service.NotificationColumns)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Delete godoc
// @Summary Delete a notification
// @Description Only the author of a notification can delete it.
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
