package usecase

import (
	"context"
	"errors"
	"log/slog"

	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/pkg/clock"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/errs"
	"companion-booking/internal/pkg/oauthstate"

	"github.com/google/uuid"
)

var (
	ErrCodeExchangeFailed = errors.New("authorization code exchange failed")
)

// CalendarConnectUseCase drives the OAuth consent flow that links a
// companion's calendar: AuthorizeURL starts it, CompleteCallback finishes
// it by storing tokens, opening a push channel, and warming availability.
type CalendarConnectUseCase interface {
	AuthorizeURL(companionID uuid.UUID) (string, error)
	CompleteCallback(ctx context.Context, state, code string) (uuid.UUID, error)
}

type calendarConnectImpl struct {
	vault      CredentialVault
	provider   ProviderAuthClient
	gateway    CalendarGateway
	reconciler AvailabilityReconciler
	signer     *oauthstate.Signer
	runner     TaskRunner
	clock      clock.Clock
	webhookCfg config.WebhookConfig
}

func NewCalendarConnectUseCase(
	vault CredentialVault,
	provider ProviderAuthClient,
	gateway CalendarGateway,
	reconciler AvailabilityReconciler,
	signer *oauthstate.Signer,
	runner TaskRunner,
	clk clock.Clock,
	webhookCfg config.WebhookConfig,
) CalendarConnectUseCase {
	return &calendarConnectImpl{
		vault:      vault,
		provider:   provider,
		gateway:    gateway,
		reconciler: reconciler,
		signer:     signer,
		runner:     runner,
		clock:      clk,
		webhookCfg: webhookCfg,
	}
}

func (c *calendarConnectImpl) AuthorizeURL(companionID uuid.UUID) (string, error) {
	state, err := c.signer.Sign(companionID, c.clock.Now())
	if err != nil {
		return "", errs.Wrap(err, "failed to sign oauth state")
	}
	return c.provider.AuthCodeURL(state), nil
}

func (c *calendarConnectImpl) CompleteCallback(ctx context.Context, state, code string) (uuid.UUID, error) {
	companionID, err := c.signer.Verify(state, c.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	tokens, err := c.provider.ExchangeCode(ctx, code)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrCodeExchangeFailed)
	}

	if err := c.vault.Store(ctx, companionID, tokens); err != nil {
		return uuid.Nil, err
	}

	// Channel registration is best-effort here: the credential is already
	// stored, and a missing channel only delays resyncs until the next
	// registration attempt.
	if _, err := c.gateway.RegisterChannel(ctx, companionID); err != nil {
		slog.Warn("webhook channel registration failed after connect",
			"companion_id", companionID, "error", err)
	}

	today := schedule.DateOf(c.clock.Now())
	horizon := c.webhookCfg.HorizonDays
	c.runner.Go(func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
		defer cancel()
		if err := c.reconciler.ResyncRange(bgCtx, companionID, today, horizon); err != nil {
			slog.Warn("initial availability sync failed",
				"companion_id", companionID, "error", err)
		}
	})

	return companionID, nil
}
