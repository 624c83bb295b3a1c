package api

import (
	"errors"
	"net/http"

	resdto "companion-booking/internal/handler/dto/response"
	"companion-booking/internal/handler/httperr"
	"companion-booking/internal/handler/middleware"
	"companion-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type QuotaHandler struct {
	quotaUseCase usecase.QuotaUseCase
}

func NewQuotaHandler(quotaUseCase usecase.QuotaUseCase) *QuotaHandler {
	return &QuotaHandler{
		quotaUseCase: quotaUseCase,
	}
}

// @Summary Get my interaction quota
// @Tags quota
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.QuotaResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /quota [get]
func (h *QuotaHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	q, err := h.quotaUseCase.GetQuota(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrQuotaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active subscription",
			})
			return
		}
		httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromQuota(q))
}
