package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/domain/webhook"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/google"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrExternalService = errors.New("calendar provider unavailable")
)

const (
	providerCalendarID  = "primary"
	providerMaxAttempts = 3
	providerBackoffBase = 500 * time.Millisecond
)

// ProviderCalendarClient is the data half of the provider protocol.
type ProviderCalendarClient interface {
	FreeBusy(ctx context.Context, accessToken, calendarID string, from, to time.Time) ([]schedule.BusyInterval, error)
	Watch(ctx context.Context, accessToken, calendarID, channelID, token, callbackURL string, ttl time.Duration) (google.WatchResult, error)
	StopChannel(ctx context.Context, accessToken, channelID, resourceID string) error
}

type ChannelRepository interface {
	Replace(ctx context.Context, ch *webhook.Channel) error
	FindByExternalID(ctx context.Context, externalChannelID string) (*webhook.Channel, error)
	FindByCompanion(ctx context.Context, companionID uuid.UUID) (*webhook.Channel, error)
}

// CalendarGateway wraps the raw provider client with token management and
// the retry policy. All times are UTC.
type CalendarGateway interface {
	BusyIntervals(ctx context.Context, companionID uuid.UUID, from, to time.Time) ([]schedule.BusyInterval, error)
	RegisterChannel(ctx context.Context, companionID uuid.UUID) (*webhook.Channel, error)
}

type calendarGatewayImpl struct {
	vault       CredentialVault
	provider    ProviderCalendarClient
	channelRepo ChannelRepository
	webhookCfg  config.WebhookConfig
}

func NewCalendarGateway(
	vault CredentialVault,
	provider ProviderCalendarClient,
	channelRepo ChannelRepository,
	webhookCfg config.WebhookConfig,
) CalendarGateway {
	return &calendarGatewayImpl{
		vault:       vault,
		provider:    provider,
		channelRepo: channelRepo,
		webhookCfg:  webhookCfg,
	}
}

func (g *calendarGatewayImpl) BusyIntervals(ctx context.Context, companionID uuid.UUID, from, to time.Time) ([]schedule.BusyInterval, error) {
	var busy []schedule.BusyInterval
	err := g.withRetry(ctx, companionID, func(token string) error {
		var callErr error
		busy, callErr = g.provider.FreeBusy(ctx, token, providerCalendarID, from, to)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return busy, nil
}

// RegisterChannel opens a fresh push channel for the companion's calendar
// and persists the join record. An existing channel is replaced and stopped
// at the provider best-effort; if the stop fails the provider still expires
// it at its TTL.
func (g *calendarGatewayImpl) RegisterChannel(ctx context.Context, companionID uuid.UUID) (*webhook.Channel, error) {
	prev, err := g.channelRepo.FindByCompanion(ctx, companionID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Wrap(err, "failed to load current webhook channel")
		}
		prev = nil
	}

	channelID := uuid.NewString()
	validationToken := uuid.NewString()

	var result google.WatchResult
	err = g.withRetry(ctx, companionID, func(token string) error {
		var callErr error
		result, callErr = g.provider.Watch(ctx, token, providerCalendarID,
			channelID, validationToken, g.webhookCfg.CallbackURL, g.webhookCfg.ChannelTTL)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	ch := &webhook.Channel{
		CompanionID:       companionID,
		ExternalChannelID: result.ChannelID,
		ResourceID:        result.ResourceID,
		ValidationToken:   validationToken,
		ExpiresAt:         result.Expiration,
	}
	if err := g.channelRepo.Replace(ctx, ch); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Wrap(err, "channel id collision")
		}
		return nil, errs.Wrap(err, "failed to persist webhook channel")
	}

	if prev != nil {
		g.stopReplacedChannel(ctx, companionID, prev)
	}
	return ch, nil
}

// stopReplacedChannel ends the superseded push channel at the provider. Only
// runs after the replacement is registered so a failure never leaves the
// companion without push coverage.
func (g *calendarGatewayImpl) stopReplacedChannel(ctx context.Context, companionID uuid.UUID, prev *webhook.Channel) {
	token, err := g.vault.GetValidToken(ctx, companionID)
	if err != nil {
		slog.Warn("could not stop replaced webhook channel",
			"companion_id", companionID,
			"channel_id", prev.ExternalChannelID,
			"error", err)
		return
	}
	if err := g.provider.StopChannel(ctx, token, prev.ExternalChannelID, prev.ResourceID); err != nil {
		slog.Warn("could not stop replaced webhook channel",
			"companion_id", companionID,
			"channel_id", prev.ExternalChannelID,
			"error", err)
	}
}

// withRetry runs call with a valid access token, retrying transient provider
// failures with exponential backoff. A 401 triggers one forced token refresh
// without consuming an attempt; a second 401 means the credential is dead.
func (g *calendarGatewayImpl) withRetry(ctx context.Context, companionID uuid.UUID, call func(token string) error) error {
	token, err := g.vault.GetValidToken(ctx, companionID)
	if err != nil {
		return err
	}

	refreshed := false
	for attempt := 1; attempt <= providerMaxAttempts; attempt++ {
		err = call(token)
		if err == nil {
			return nil
		}

		var apiErr *google.APIError
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.StatusCode == http.StatusUnauthorized:
				if refreshed {
					return ErrExpiredRefreshToken
				}
				refreshed = true
				token, err = g.vault.ForceRefresh(ctx, companionID, token)
				if err != nil {
					return err
				}
				attempt--
				continue
			case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
				return errs.Mark(err, ErrExternalService)
			}
		}

		if attempt == providerMaxAttempts {
			break
		}

		wait := providerBackoffBase << (attempt - 1)
		slog.Warn("provider call failed, retrying",
			"companion_id", companionID,
			"attempt", attempt,
			"wait_time", wait,
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return errs.Mark(err, ErrExternalService)
}
