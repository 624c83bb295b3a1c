package response

import (
	"companion-booking/internal/domain/user"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func FromUser(token string, u *user.User) *LoginResponse {
	return &LoginResponse{
		AccessToken: token,
		User: UserResponse{
			ID:    u.ID(),
			Email: u.Email().Value(),
			Role:  u.Role().String(),
		},
	}
}
