// Package request defines the inbound DTOs bound and validated by gin.
package request

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"displayName" binding:"max=100"`
}

// LoginRequest authenticates by username and password.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UpdateProfileRequest mutates the caller's profile fields.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" binding:"max=100"`
	Avatar      string `json:"avatar" binding:"omitempty,url"`
}
