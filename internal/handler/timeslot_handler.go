package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ediary-dev/ediary-api/internal/service"
	appErrors "github.com/ediary-dev/ediary-api/pkg/errors"
	"github.com/ediary-dev/ediary-api/pkg/response"
)

// TimeSlotHandler manages lesson time grid endpoints.
type TimeSlotHandler struct {
	service *service.TimeSlotService
}

// NewTimeSlotHandler constructs handler.
func NewTimeSlotHandler(svc *service.TimeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{service: svc}
}

// ListDefaults godoc
// @Summary List school-wide default slots
// @Tags Time Slots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /slots/defaults [get]
func (h *TimeSlotHandler) ListDefaults(c *gin.Context) {
	defaults, err := h.service.ListDefaults(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, defaults, nil)
}

// ListEffective godoc
// @Summary List effective slots for a class
// @Tags Time Slots
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/slots [get]
func (h *TimeSlotHandler) ListEffective(c *gin.Context) {
	list, err := h.service.ListEffective(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if len(list.OrphanOverrides) > 0 {
		meta = map[string]interface{}{"orphan_overrides": list.OrphanOverrides}
	}
	response.JSON(c, http.StatusOK, list.Slots, nil, meta)
}

type upsertOverrideBody struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// UpsertOverride godoc
// @Summary Create or replace a class time override
// @Tags Time Slots
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param slotNumber path int true "Slot number"
// @Param payload body upsertOverrideBody true "Override payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/slots/{slotNumber} [put]
func (h *TimeSlotHandler) UpsertOverride(c *gin.Context) {
	slotNumber, err := strconv.Atoi(c.Param("slotNumber"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "slot number must be an integer"))
		return
	}

	var body upsertOverrideBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	override, err := h.service.UpsertOverride(c.Request.Context(), service.UpsertOverrideRequest{
		ClassID:    c.Param("id"),
		SlotNumber: slotNumber,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, override, nil)
}

// DeleteOverride godoc
// @Summary Delete a class time override
// @Tags Time Slots
// @Produce json
// @Param id path string true "Class ID"
// @Param slotNumber path int true "Slot number"
// @Success 204
// @Router /classes/{id}/slots/{slotNumber} [delete]
func (h *TimeSlotHandler) DeleteOverride(c *gin.Context) {
	slotNumber, err := strconv.Atoi(c.Param("slotNumber"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "slot number must be an integer"))
		return
	}
	if err := h.service.DeleteOverride(c.Request.Context(), c.Param("id"), slotNumber); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ResetOverrides godoc
// @Summary Remove every time override of a class
// @Tags Time Slots
// @Produce json
// @Param id path string true "Class ID"
// @Success 204
// @Router /classes/{id}/slots [delete]
func (h *TimeSlotHandler) ResetOverrides(c *gin.Context) {
	if err := h.service.ResetOverrides(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
