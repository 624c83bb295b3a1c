package usecase

import (
	"context"
	"errors"

	"companion-booking/internal/domain/user"
	"companion-booking/internal/infra"
	"companion-booking/internal/pkg/jwt"
	"companion-booking/internal/pkg/password"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type AuthUseCase interface {
	Login(ctx context.Context, email, rawPassword string) (string, *user.User, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, rawPassword string) (string, *user.User, error) {
	u, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound is reported as bad credentials so the response does not
		// leak which emails exist.
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !u.IsActive() {
		return "", nil, ErrUserInactive
	}

	if err := password.ComparePassword(u.PasswordHash(), rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, u, nil
}
