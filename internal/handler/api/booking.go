package api

import (
	"errors"
	"net/http"

	"companion-booking/internal/domain/appointment"
	reqdto "companion-booking/internal/handler/dto/request"
	resdto "companion-booking/internal/handler/dto/response"
	"companion-booking/internal/handler/httperr"
	"companion-booking/internal/handler/middleware"
	"companion-booking/internal/metrics"
	"companion-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

// @Summary Book an appointment
// @Description Book a free slot with a companion
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAppointmentRequest true "Booking request"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	appt, err := h.bookingUseCase.Book(c.Request.Context(), userID, req.CompanionID, req.StartsAt)
	if err != nil {
		h.countFailure(err)
		switch {
		case errors.Is(err, appointment.ErrSlotInPast),
			errors.Is(err, appointment.ErrSlotNotAligned),
			errors.Is(err, appointment.ErrWrongSlotLength),
			errors.Is(err, appointment.ErrInvalidTimeSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid slot",
			})
		case errors.Is(err, usecase.ErrCompanionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Companion not found",
			})
		case errors.Is(err, usecase.ErrSlotTaken), errors.Is(err, usecase.ErrSlotBusy):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Slot is no longer available",
			})
		case errors.Is(err, usecase.ErrQuotaExceeded):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Interaction quota exhausted",
			})
		case errors.Is(err, usecase.ErrQuotaNotFound):
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "No active subscription",
			})
		default:
			httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	metrics.BookingsTotal.WithLabelValues(metrics.ResultConfirmed).Inc()
	c.JSON(http.StatusCreated, resdto.FromAppointment(appt))
}

// @Summary Get appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	appt, err := h.bookingUseCase.GetAppointment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
			return
		}
		httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointment(appt))
}

// @Summary List my appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 401 {object} map[string]string
// @Router /appointments [get]
func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	appts, err := h.bookingUseCase.UserAppointments(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointments(appts))
}

// @Summary Cancel appointment
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /appointments/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	if err := h.bookingUseCase.Cancel(c.Request.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, usecase.ErrNotSlotOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Appointment belongs to another user",
			})
		case errors.Is(err, appointment.ErrAlreadyCanceled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Appointment is already canceled",
			})
		default:
			httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) countFailure(err error) {
	switch {
	case errors.Is(err, usecase.ErrSlotTaken), errors.Is(err, usecase.ErrSlotBusy):
		metrics.BookingsTotal.WithLabelValues(metrics.ResultSlotTaken).Inc()
	case errors.Is(err, usecase.ErrQuotaExceeded), errors.Is(err, usecase.ErrQuotaNotFound):
		metrics.BookingsTotal.WithLabelValues(metrics.ResultQuotaBlocked).Inc()
	default:
		metrics.BookingsTotal.WithLabelValues(metrics.ResultError).Inc()
	}
}
