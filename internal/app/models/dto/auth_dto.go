package dto

import "github.com/ekurt/gradebook/internal/app/models"

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries the issued token pair and the caller's profile
type TokenResponse struct {
	Token            string       `json:"token"`
	RefreshToken     string       `json:"refreshToken"`
	ExpiresIn        int          `json:"expiresIn"`
	RefreshExpiresIn int          `json:"refreshExpiresIn"`
	User             *models.User `json:"user"`
}
