// Package oauthstate signs and verifies the opaque state value carried
// through the provider consent redirect. The state binds a companion ID to a
// random nonce so the callback can prove the flow was started by us for that
// companion.
package oauthstate

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidState = errors.New("invalid oauth state")
	ErrExpiredState = errors.New("expired oauth state")
)

const stateTTL = 10 * time.Minute

type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) Sign(companionID uuid.UUID, now time.Time) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate state nonce: %w", err)
	}

	payload := fmt.Sprintf("%s:%s:%d", companionID, hex.EncodeToString(nonce), now.Add(stateTTL).Unix())
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + s.sign(encoded), nil
}

// Verify returns the companion ID embedded in the state, or ErrInvalidState /
// ErrExpiredState. Signature comparison is constant-time.
func (s *Signer) Verify(state string, now time.Time) (uuid.UUID, error) {
	encoded, sig, ok := strings.Cut(state, ".")
	if !ok {
		return uuid.Nil, ErrInvalidState
	}
	if !hmac.Equal([]byte(s.sign(encoded)), []byte(sig)) {
		return uuid.Nil, ErrInvalidState
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return uuid.Nil, ErrInvalidState
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return uuid.Nil, ErrInvalidState
	}

	companionID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, ErrInvalidState
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return uuid.Nil, ErrInvalidState
	}
	if now.Unix() > expires {
		return uuid.Nil, ErrExpiredState
	}

	return companionID, nil
}

func (s *Signer) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
