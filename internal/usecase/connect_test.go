//go:build unit

package usecase_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"companion-booking/internal/domain/credential"
	"companion-booking/internal/pkg/clock"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/oauthstate"
	"companion-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type connectFixture struct {
	uc          usecase.CalendarConnectUseCase
	credRepo    *fakeCredentialRepo
	channelRepo *fakeChannelRepo
	reconciler  *fakeReconciler
	signer      *oauthstate.Signer
	clock       *clock.MockClock
	companionID uuid.UUID
}

func newConnectFixture(t *testing.T) *connectFixture {
	t.Helper()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	companionID := uuid.New()
	mockClock := clock.NewMockClock(now)
	signer := oauthstate.NewSigner("state-secret")

	credRepo := newFakeCredentialRepo()
	auth := &fakeAuthProvider{
		nextTokens: credential.Tokens{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresAt:    now.Add(time.Hour),
		},
	}
	vault := usecase.NewCredentialVault(credRepo, auth, mockClock)

	channelRepo := newFakeChannelRepo()
	gateway := usecase.NewCalendarGateway(vault, &fakeCalendarProvider{}, channelRepo, config.WebhookConfig{
		CallbackURL: "https://api.example.com/webhooks/calendar",
		ChannelTTL:  168 * time.Hour,
	})

	reconciler := &fakeReconciler{}
	uc := usecase.NewCalendarConnectUseCase(
		vault, auth, gateway, reconciler, signer, syncRunner{}, mockClock,
		config.WebhookConfig{HorizonDays: 7},
	)
	return &connectFixture{
		uc:          uc,
		credRepo:    credRepo,
		channelRepo: channelRepo,
		reconciler:  reconciler,
		signer:      signer,
		clock:       mockClock,
		companionID: companionID,
	}
}

func TestConnect_AuthorizeURL_CarriesSignedState(t *testing.T) {
	t.Parallel()

	f := newConnectFixture(t)
	rawURL, err := f.uc.AuthorizeURL(f.companionID)
	require.NoError(t, err)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)

	id, err := f.signer.Verify(state, f.clock.Now())
	require.NoError(t, err)
	require.Equal(t, f.companionID, id)
}

func TestConnect_CompleteCallback(t *testing.T) {
	t.Parallel()

	f := newConnectFixture(t)
	state, err := f.signer.Sign(f.companionID, f.clock.Now())
	require.NoError(t, err)

	id, err := f.uc.CompleteCallback(context.Background(), state, "auth-code")
	require.NoError(t, err)
	require.Equal(t, f.companionID, id)

	require.True(t, f.credRepo.has(f.companionID))

	ch, err := f.channelRepo.FindByCompanion(context.Background(), f.companionID)
	require.NoError(t, err)
	require.NotEmpty(t, ch.ValidationToken)

	require.Equal(t, 1, f.reconciler.count())
	require.Equal(t, f.companionID, f.reconciler.lastID)
}

func TestConnect_CompleteCallback_TamperedState(t *testing.T) {
	t.Parallel()

	f := newConnectFixture(t)
	state, err := f.signer.Sign(f.companionID, f.clock.Now())
	require.NoError(t, err)

	_, err = f.uc.CompleteCallback(context.Background(), state+"x", "auth-code")
	require.ErrorIs(t, err, oauthstate.ErrInvalidState)
}

func TestConnect_CompleteCallback_ExpiredState(t *testing.T) {
	t.Parallel()

	f := newConnectFixture(t)
	state, err := f.signer.Sign(f.companionID, f.clock.Now())
	require.NoError(t, err)

	f.clock.Add(11 * time.Minute)
	_, err = f.uc.CompleteCallback(context.Background(), state, "auth-code")
	require.ErrorIs(t, err, oauthstate.ErrExpiredState)
}
