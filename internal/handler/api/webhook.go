package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"companion-booking/internal/domain/quota"
	"companion-booking/internal/domain/webhook"
	reqdto "companion-booking/internal/handler/dto/request"
	"companion-booking/internal/handler/httperr"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

// Provider notification headers.
const (
	headerChannelID     = "X-Goog-Channel-ID"
	headerChannelToken  = "X-Goog-Channel-Token"
	headerResourceState = "X-Goog-Resource-State"
	headerMessageNumber = "X-Goog-Message-Number"
	headerSharedSecret  = "X-Webhook-Secret"
)

type WebhookHandler struct {
	ingester      usecase.WebhookIngester
	quotaUseCase  usecase.QuotaUseCase
	sharedSecret  string
	billingSecret string
}

func NewWebhookHandler(ingester usecase.WebhookIngester, quotaUseCase usecase.QuotaUseCase, cfg config.WebhookConfig) *WebhookHandler {
	return &WebhookHandler{
		ingester:      ingester,
		quotaUseCase:  quotaUseCase,
		sharedSecret:  cfg.SharedSecret,
		billingSecret: cfg.BillingSecret,
	}
}

// Challenge answers the provider's endpoint verification handshake by echoing
// the challenge token as plain text.
//
// @Summary Webhook endpoint verification
// @Tags webhooks
// @Param challenge query string true "Verification challenge"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Router /webhooks/calendar [get]
func (h *WebhookHandler) Challenge(c *gin.Context) {
	challenge := c.Query("challenge")
	if challenge == "" {
		challenge = c.Query("hub.challenge")
	}
	if challenge == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing challenge parameter",
		})
		return
	}
	c.String(http.StatusOK, challenge)
}

// Notify acknowledges every notification with 200 once it passes the shared
// secret check. Undecodable payloads, validation failures, and processing
// failures are logged but still ACKed, otherwise the provider retries them
// indefinitely.
//
// @Summary Calendar push notification
// @Description Accept a provider push notification and schedule a resync
// @Tags webhooks
// @Success 200
// @Failure 401 {object} map[string]string
// @Router /webhooks/calendar [post]
func (h *WebhookHandler) Notify(c *gin.Context) {
	if h.sharedSecret != "" && c.GetHeader(headerSharedSecret) != h.sharedSecret {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid webhook secret",
		})
		return
	}

	n, err := decodeNotification(c)
	if err != nil {
		slog.Warn("webhook notification undecodable", "error", err)
		c.Status(http.StatusOK)
		return
	}

	if err := h.ingester.Ingest(c.Request.Context(), n); err != nil {
		if errors.Is(err, usecase.ErrWebhookValidation) {
			slog.Warn("webhook notification rejected",
				"channel_id", n.ChannelID, "state", n.ResourceState)
		} else {
			slog.Error("webhook notification processing failed",
				"channel_id", n.ChannelID, "error", err)
		}
	}

	c.Status(http.StatusOK)
}

// BillingEvent applies a subscription change pushed by the billing provider.
// The payload is authenticated with an HMAC signature over the raw body.
//
// @Summary Billing subscription event
// @Tags webhooks
// @Accept json
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /webhooks/billing [post]
func (h *WebhookHandler) BillingEvent(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	if !h.validSignature(body, c.GetHeader("X-Billing-Signature")) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Invalid signature",
		})
		return
	}

	var req reqdto.BillingEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.quotaUseCase.ApplyPlanChange(c.Request.Context(), req.UserID, req.Plan); err != nil {
		if errors.Is(err, quota.ErrUnknownPlan) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown plan type",
			})
			return
		}
		httperr.Abort(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.Status(http.StatusNoContent)
}

// decodeNotification reads the Goog-style headers and falls back to the JSON
// body form for providers that post the channel reference in the payload.
func decodeNotification(c *gin.Context) (webhook.Notification, error) {
	if channelID := c.GetHeader(headerChannelID); channelID != "" {
		state := c.GetHeader(headerResourceState)
		if state == "" {
			return webhook.Notification{}, errors.New("missing resource state header")
		}
		msgNum, err := strconv.ParseInt(c.GetHeader(headerMessageNumber), 10, 64)
		if err != nil {
			return webhook.Notification{}, errors.New("invalid message number header")
		}
		return webhook.Notification{
			ChannelID:     channelID,
			Token:         c.GetHeader(headerChannelToken),
			ResourceState: state,
			MessageNumber: msgNum,
		}, nil
	}

	var body struct {
		Channel struct {
			ID    string `json:"id"`
			Token string `json:"token"`
		} `json:"channel"`
		ResourceState string `json:"resourceState"`
		MessageNumber int64  `json:"messageNumber"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return webhook.Notification{}, err
	}
	if body.Channel.ID == "" || body.ResourceState == "" {
		return webhook.Notification{}, errors.New("missing channel id or resource state")
	}
	return webhook.Notification{
		ChannelID:     body.Channel.ID,
		Token:         body.Channel.Token,
		ResourceState: body.ResourceState,
		MessageNumber: body.MessageNumber,
	}, nil
}

func (h *WebhookHandler) validSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.billingSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
