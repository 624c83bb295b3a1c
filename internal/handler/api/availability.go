package api

import (
	"errors"
	"net/http"

	"companion-booking/internal/domain/schedule"
	resdto "companion-booking/internal/handler/dto/response"
	"companion-booking/internal/handler/httperr"
	"companion-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	reconciler usecase.AvailabilityReconciler
}

func NewAvailabilityHandler(reconciler usecase.AvailabilityReconciler) *AvailabilityHandler {
	return &AvailabilityHandler{
		reconciler: reconciler,
	}
}

// @Summary Companion availability
// @Description List bookable slots for a companion on a day
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Companion ID"
// @Param date query string true "Day in YYYY-MM-DD"
// @Param free query string false "Set to 1 to omit booked slots"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /companions/{id}/availability [get]
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	companionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid companion ID format",
		})
		return
	}

	date, err := schedule.ParseCivilDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or missing date, expected YYYY-MM-DD",
		})
		return
	}

	slots, err := h.reconciler.Availability(c.Request.Context(), companionID, date)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrReconcileBusy):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Availability is being recomputed, retry shortly",
			})
		case errors.Is(err, usecase.ErrCredentialNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Companion has no connected calendar",
			})
		case errors.Is(err, usecase.ErrExpiredRefreshToken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Companion calendar connection expired",
			})
		case errors.Is(err, usecase.ErrExternalService):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Calendar provider unavailable",
			})
		default:
			httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	if c.Query("free") == "1" {
		slots = schedule.Free(slots)
	}

	c.JSON(http.StatusOK, resdto.FromSlots(date, slots))
}
