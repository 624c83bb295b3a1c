//go:build unit

package oauthstate_test

import (
	"strings"
	"testing"
	"time"

	"companion-booking/internal/pkg/oauthstate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	signer := oauthstate.NewSigner("secret")
	companionID := uuid.New()
	now := time.Now()

	state, err := signer.Sign(companionID, now)
	require.NoError(t, err)

	got, err := signer.Verify(state, now)
	require.NoError(t, err)
	assert.Equal(t, companionID, got)
}

func TestVerify_UniquePerSign(t *testing.T) {
	signer := oauthstate.NewSigner("secret")
	companionID := uuid.New()
	now := time.Now()

	a, err := signer.Sign(companionID, now)
	require.NoError(t, err)
	b, err := signer.Sign(companionID, now)
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "nonce must make each state unique")
}

func TestVerify_Tampered(t *testing.T) {
	signer := oauthstate.NewSigner("secret")
	state, err := signer.Sign(uuid.New(), time.Now())
	require.NoError(t, err)

	encoded, sig, _ := strings.Cut(state, ".")
	tampered := encoded + "x." + sig

	_, err = signer.Verify(tampered, time.Now())
	assert.ErrorIs(t, err, oauthstate.ErrInvalidState)
}

func TestVerify_WrongSecret(t *testing.T) {
	state, err := oauthstate.NewSigner("secret-a").Sign(uuid.New(), time.Now())
	require.NoError(t, err)

	_, err = oauthstate.NewSigner("secret-b").Verify(state, time.Now())
	assert.ErrorIs(t, err, oauthstate.ErrInvalidState)
}

func TestVerify_Expired(t *testing.T) {
	signer := oauthstate.NewSigner("secret")
	now := time.Now()

	state, err := signer.Sign(uuid.New(), now)
	require.NoError(t, err)

	_, err = signer.Verify(state, now.Add(11*time.Minute))
	assert.ErrorIs(t, err, oauthstate.ErrExpiredState)
}

func TestVerify_Garbage(t *testing.T) {
	signer := oauthstate.NewSigner("secret")

	for _, state := range []string{"", "no-dot", "a.b", "!!!.###"} {
		_, err := signer.Verify(state, time.Now())
		assert.ErrorIs(t, err, oauthstate.ErrInvalidState, state)
	}
}
