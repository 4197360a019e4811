package dto

import (
	"time"

	"github.com/google/uuid"

	model "pustakaku_backend/internals/features/users/auth/model"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=owner admin staff"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginGoogleRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func FromModel(u *model.UserModel) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Name:      u.UserName,
		Email:     u.UserEmail,
		Role:      u.UserRole,
		CreatedAt: u.UserCreatedAt,
	}
}
