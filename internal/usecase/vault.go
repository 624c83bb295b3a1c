package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"companion-booking/internal/domain/credential"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/google"
	"companion-booking/internal/pkg/clock"
	"companion-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var (
	ErrCredentialNotFound   = errors.New("calendar credential not found")
	ErrExpiredRefreshToken  = errors.New("refresh token expired or revoked")
	ErrCredentialStoreFault = errors.New("credential store operation failed")
)

// refreshMargin: tokens are refreshed when fewer than this remains before
// expiry, so a token handed to a caller stays valid for the whole call.
const refreshMargin = 5 * time.Minute

type CredentialRepository interface {
	Upsert(ctx context.Context, cred *credential.CalendarCredential) error
	FindByCompanion(ctx context.Context, companionID uuid.UUID) (*credential.CalendarCredential, error)
	Delete(ctx context.Context, companionID uuid.UUID) error
}

// ProviderAuthClient is the OAuth half of the provider protocol.
type ProviderAuthClient interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (credential.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken string) (credential.Tokens, error)
}

// CredentialVault owns the token lifecycle for companion calendar
// credentials. Concurrent callers needing a refresh for the same companion
// are collapsed into a single provider round trip.
type CredentialVault interface {
	Store(ctx context.Context, companionID uuid.UUID, tokens credential.Tokens) error
	GetValidToken(ctx context.Context, companionID uuid.UUID) (string, error)
	ForceRefresh(ctx context.Context, companionID uuid.UUID, staleToken string) (string, error)
	Revoke(ctx context.Context, companionID uuid.UUID) error
}

type credentialVaultImpl struct {
	credRepo CredentialRepository
	provider ProviderAuthClient
	clock    clock.Clock
	group    singleflight.Group
}

func NewCredentialVault(credRepo CredentialRepository, provider ProviderAuthClient, clk clock.Clock) CredentialVault {
	return &credentialVaultImpl{
		credRepo: credRepo,
		provider: provider,
		clock:    clk,
	}
}

func (v *credentialVaultImpl) Store(ctx context.Context, companionID uuid.UUID, tokens credential.Tokens) error {
	cred, err := credential.NewCalendarCredential(companionID, tokens)
	if err != nil {
		return err
	}
	if err := v.credRepo.Upsert(ctx, cred); err != nil {
		return errs.Mark(err, ErrCredentialStoreFault)
	}
	return nil
}

func (v *credentialVaultImpl) GetValidToken(ctx context.Context, companionID uuid.UUID) (string, error) {
	cred, err := v.loadCredential(ctx, companionID)
	if err != nil {
		return "", err
	}

	if !cred.NeedsRefresh(v.clock.Now(), refreshMargin) {
		return cred.AccessToken(), nil
	}

	return v.refreshShared(ctx, companionID, "")
}

// ForceRefresh refreshes past the expiry check, for callers whose token was
// rejected by the provider before its recorded expiry. staleToken guards
// against refreshing twice when another caller already rotated the token.
func (v *credentialVaultImpl) ForceRefresh(ctx context.Context, companionID uuid.UUID, staleToken string) (string, error) {
	return v.refreshShared(ctx, companionID, staleToken)
}

func (v *credentialVaultImpl) Revoke(ctx context.Context, companionID uuid.UUID) error {
	if err := v.credRepo.Delete(ctx, companionID); err != nil {
		return errs.Mark(err, ErrCredentialStoreFault)
	}
	return nil
}

// refreshShared funnels all refreshes for one companion through a single
// flight. The credential is re-read inside the flight so late joiners see
// the token the winner stored instead of refreshing again.
func (v *credentialVaultImpl) refreshShared(ctx context.Context, companionID uuid.UUID, staleToken string) (string, error) {
	token, err, _ := v.group.Do(companionID.String(), func() (any, error) {
		cred, err := v.loadCredential(ctx, companionID)
		if err != nil {
			return "", err
		}

		fresh := !cred.NeedsRefresh(v.clock.Now(), refreshMargin)
		if staleToken != "" {
			fresh = fresh && cred.AccessToken() != staleToken
		}
		if fresh {
			return cred.AccessToken(), nil
		}

		tokens, err := v.provider.RefreshTokens(ctx, cred.RefreshToken())
		if err != nil {
			if google.IsInvalidGrant(err) {
				slog.Warn("refresh token revoked, dropping credential",
					"companion_id", companionID)
				if delErr := v.credRepo.Delete(ctx, companionID); delErr != nil {
					slog.Error("failed to delete revoked credential",
						"companion_id", companionID, "error", delErr)
				}
				return "", ErrExpiredRefreshToken
			}
			return "", errs.Wrap(err, "token refresh failed")
		}

		rotated := cred.Refreshed(tokens)
		if err := v.credRepo.Upsert(ctx, rotated); err != nil {
			return "", errs.Mark(err, ErrCredentialStoreFault)
		}
		return rotated.AccessToken(), nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}

func (v *credentialVaultImpl) loadCredential(ctx context.Context, companionID uuid.UUID) (*credential.CalendarCredential, error) {
	cred, err := v.credRepo.FindByCompanion(ctx, companionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCredentialNotFound
		}
		return nil, errs.Mark(err, ErrCredentialStoreFault)
	}
	return cred, nil
}
