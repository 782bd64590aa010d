package dto

import "github.com/google/uuid"

type AuthenticateRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthenticateResponse struct {
	AccessToken string    `json:"access_token"`
	SessionId   uuid.UUID `json:"session_id"`
	UserId      uint      `json:"user_id"`
}

type SignOutRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}
