package credential

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMissingRefreshToken = errors.New("credential has no refresh token")

// Tokens is the raw token set returned by the provider on code exchange or
// refresh. RefreshToken may be empty on refresh responses; the stored one is
// kept in that case.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Scopes       []string
}

// CalendarCredential is owned exclusively by the credential vault and mutated
// only through refresh.
type CalendarCredential struct {
	companionID  uuid.UUID
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	scopes       []string
	updatedAt    time.Time
}

func NewCalendarCredential(companionID uuid.UUID, t Tokens) (*CalendarCredential, error) {
	if t.RefreshToken == "" {
		return nil, ErrMissingRefreshToken
	}
	return &CalendarCredential{
		companionID:  companionID,
		accessToken:  t.AccessToken,
		refreshToken: t.RefreshToken,
		expiresAt:    t.ExpiresAt,
		scopes:       t.Scopes,
	}, nil
}

func ReconstructCalendarCredential(
	companionID uuid.UUID,
	accessToken, refreshToken string,
	expiresAt time.Time,
	scopes []string,
	updatedAt time.Time,
) *CalendarCredential {
	return &CalendarCredential{
		companionID:  companionID,
		accessToken:  accessToken,
		refreshToken: refreshToken,
		expiresAt:    expiresAt,
		scopes:       scopes,
		updatedAt:    updatedAt,
	}
}

// NeedsRefresh reports whether the access token expires within the safety
// margin. Tokens already expired obviously qualify.
func (c *CalendarCredential) NeedsRefresh(now time.Time, margin time.Duration) bool {
	return !now.Add(margin).Before(c.expiresAt)
}

// Refreshed returns a copy carrying the new access token and expiry. The
// refresh token is replaced only when the provider issued a new one.
func (c *CalendarCredential) Refreshed(t Tokens) *CalendarCredential {
	refreshToken := c.refreshToken
	if t.RefreshToken != "" {
		refreshToken = t.RefreshToken
	}
	return &CalendarCredential{
		companionID:  c.companionID,
		accessToken:  t.AccessToken,
		refreshToken: refreshToken,
		expiresAt:    t.ExpiresAt,
		scopes:       c.scopes,
	}
}

func (c *CalendarCredential) CompanionID() uuid.UUID { return c.companionID }
func (c *CalendarCredential) AccessToken() string    { return c.accessToken }
func (c *CalendarCredential) RefreshToken() string   { return c.refreshToken }
func (c *CalendarCredential) ExpiresAt() time.Time   { return c.expiresAt }
func (c *CalendarCredential) Scopes() []string       { return c.scopes }
func (c *CalendarCredential) UpdatedAt() time.Time   { return c.updatedAt }
