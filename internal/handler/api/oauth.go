package api

import (
	"errors"
	"net/http"
	"net/url"

	"companion-booking/internal/domain/user"
	"companion-booking/internal/handler/middleware"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/oauthstate"
	"companion-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OAuthHandler struct {
	connectUseCase usecase.CalendarConnectUseCase
	companionRepo  usecase.CompanionRepository
	dashboardURL   string
}

func NewOAuthHandler(connectUseCase usecase.CalendarConnectUseCase, companionRepo usecase.CompanionRepository, cfg config.ServerConfig) *OAuthHandler {
	return &OAuthHandler{
		connectUseCase: connectUseCase,
		companionRepo:  companionRepo,
		dashboardURL:   cfg.DashboardURL,
	}
}

// Authorize starts the consent flow. Failure outcomes redirect back to the
// dashboard with a machine-readable error code rather than returning JSON,
// since the caller is a browser following a link.
//
// @Summary Start calendar connect
// @Description Redirect the companion to the provider's consent page
// @Tags oauth
// @Security BearerAuth
// @Param id path string true "Companion ID"
// @Success 302
// @Failure 400 {object} map[string]string
// @Router /companions/{id}/calendar/connect [get]
func (h *OAuthHandler) Authorize(c *gin.Context) {
	companionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid companion ID format",
		})
		return
	}

	if !h.mayManage(c, companionID) {
		h.redirectWithError(c, "unauthorized")
		return
	}

	authURL, err := h.connectUseCase.AuthorizeURL(companionID)
	if err != nil {
		h.redirectWithError(c, "oauth_failed")
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback finishes the consent flow. It is hit by the provider's redirect,
// so outcomes are reported to the dashboard via query parameters instead of
// JSON bodies.
//
// @Summary Calendar connect callback
// @Tags oauth
// @Param state query string true "Signed state"
// @Param code query string false "Authorization code"
// @Param error query string false "Provider error code"
// @Success 302
// @Router /auth/google/callback [get]
func (h *OAuthHandler) Callback(c *gin.Context) {
	if c.Query("error") != "" {
		h.redirectWithError(c, "oauth_failed")
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		h.redirectWithError(c, "missing_params")
		return
	}

	_, err := h.connectUseCase.CompleteCallback(c.Request.Context(), state, code)
	if err != nil {
		switch {
		case errors.Is(err, oauthstate.ErrInvalidState), errors.Is(err, oauthstate.ErrExpiredState):
			h.redirectWithError(c, "invalid_state")
		default:
			h.redirectWithError(c, "connection_failed")
		}
		return
	}

	c.Redirect(http.StatusFound, h.dashboardURL+"?connected=1")
}

func (h *OAuthHandler) redirectWithError(c *gin.Context, code string) {
	c.Redirect(http.StatusFound, h.dashboardURL+"?error="+url.QueryEscape(code))
}

// mayManage permits the companion's owner and admins. An unknown companion
// is indistinguishable from one the caller does not own.
func (h *OAuthHandler) mayManage(c *gin.Context, companionID uuid.UUID) bool {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return false
	}

	rm, err := h.companionRepo.FindByID(c.Request.Context(), companionID)
	if err != nil {
		return false
	}

	if rm.OwnerUserID == userID {
		return true
	}
	role, ok := middleware.GetUserRole(c)
	return ok && role == user.RoleAdmin
}
