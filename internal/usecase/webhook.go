package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/domain/webhook"
	"companion-booking/internal/infra"
	"companion-booking/internal/metrics"
	"companion-booking/internal/pkg/clock"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/errs"
)

var (
	ErrWebhookValidation = errors.New("webhook notification failed validation")
)

// resyncTimeout bounds the background reconciliation kicked off by a
// notification, since the requester's context is long gone by then.
const resyncTimeout = 2 * time.Minute

type DedupStore interface {
	TryInsert(ctx context.Context, externalChannelID, resourceState string, messageNumber int64) (bool, error)
}

// TaskRunner decouples background work from the ingest request. The
// production runner spawns a goroutine; tests substitute a synchronous one.
type TaskRunner interface {
	Go(fn func())
}

type GoRunner struct{}

func (GoRunner) Go(fn func()) { go fn() }

// WebhookIngester validates, deduplicates, and dispatches provider push
// notifications. Ingest returns before the resulting resync completes.
type WebhookIngester interface {
	Ingest(ctx context.Context, n webhook.Notification) error
}

type webhookIngesterImpl struct {
	channelRepo ChannelRepository
	dedup       DedupStore
	reconciler  AvailabilityReconciler
	runner      TaskRunner
	clock       clock.Clock
	webhookCfg  config.WebhookConfig
}

func NewWebhookIngester(
	channelRepo ChannelRepository,
	dedup DedupStore,
	reconciler AvailabilityReconciler,
	runner TaskRunner,
	clk clock.Clock,
	webhookCfg config.WebhookConfig,
) WebhookIngester {
	return &webhookIngesterImpl{
		channelRepo: channelRepo,
		dedup:       dedup,
		reconciler:  reconciler,
		runner:      runner,
		clock:       clk,
		webhookCfg:  webhookCfg,
	}
}

func (w *webhookIngesterImpl) Ingest(ctx context.Context, n webhook.Notification) error {
	ch, err := w.channelRepo.FindByExternalID(ctx, n.ChannelID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			metrics.WebhookNotificationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
			return ErrWebhookValidation
		}
		return errs.Wrap(err, "failed to look up webhook channel")
	}

	if ch.ValidationToken != "" && ch.ValidationToken != n.Token {
		metrics.WebhookNotificationsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return ErrWebhookValidation
	}

	if !n.TriggersResync() {
		return nil
	}

	inserted, err := w.dedup.TryInsert(ctx, n.ChannelID, n.ResourceState, n.MessageNumber)
	if err != nil {
		return errs.Wrap(err, "webhook dedup check failed")
	}
	if !inserted {
		metrics.WebhookNotificationsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		slog.Debug("duplicate webhook notification dropped",
			"channel_id", n.ChannelID,
			"message_number", n.MessageNumber)
		return nil
	}
	metrics.WebhookNotificationsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()

	companionID := ch.CompanionID
	today := schedule.DateOf(w.clock.Now())
	horizon := w.webhookCfg.HorizonDays

	w.runner.Go(func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
		defer cancel()

		if err := w.reconciler.ResyncRange(bgCtx, companionID, today, horizon); err != nil {
			slog.Error("webhook-triggered resync failed",
				"companion_id", companionID,
				"error", err)
		}
	})

	return nil
}
