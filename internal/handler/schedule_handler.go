package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ediary-dev/ediary-api/internal/service"
	appErrors "github.com/ediary-dev/ediary-api/pkg/errors"
	"github.com/ediary-dev/ediary-api/pkg/export"
	"github.com/ediary-dev/ediary-api/pkg/response"
)

// ScheduleHandler manages resolved schedule endpoints.
type ScheduleHandler struct {
	service       *service.ScheduleService
	exportEnabled bool
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService, exportEnabled bool) *ScheduleHandler {
	return &ScheduleHandler{service: svc, exportEnabled: exportEnabled}
}

// Get godoc
// @Summary Resolved schedule for a class and date range
// @Tags Schedule
// @Produce json
// @Param id path string true "Class ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	dateRange, err := service.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.service.GetSchedule(c.Request.Context(), c.Param("id"), dateRange, viewerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Export godoc
// @Summary Download the resolved schedule as CSV or PDF
// @Tags Schedule
// @Produce application/octet-stream
// @Param id path string true "Class ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /classes/{id}/schedule/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "schedule export is disabled"))
		return
	}

	dateRange, err := service.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		response.Error(c, err)
		return
	}

	timetable, err := h.service.BuildTimetable(c.Request.Context(), c.Param("id"), dateRange, viewerFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	var (
		payload     []byte
		contentType string
		extension   string
	)
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		payload, err = export.CSV(timetable)
		contentType = "text/csv"
		extension = "csv"
	case "pdf":
		payload, err = export.PDF(timetable)
		contentType = "application/pdf"
		extension = "pdf"
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable"))
		return
	}

	filename := fmt.Sprintf("schedule-%s-%s.%s", c.Param("id"), dateRange.From.Format("2006-01-02"), extension)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
