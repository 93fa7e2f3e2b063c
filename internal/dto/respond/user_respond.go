// Package respond defines the outbound DTOs serialized to clients.
package respond

import "chitchat_server/internal/model"

// UserRespond is the public view of a user. Password never leaves the server.
type UserRespond struct {
	Uuid        string `json:"uuid"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Active      bool   `json:"active"`
	Online      bool   `json:"online"`
}

// NewUserRespond converts a user row.
func NewUserRespond(u *model.User) UserRespond {
	return UserRespond{
		Uuid:        u.Uuid,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Active:      u.IsActive(),
	}
}

// LoginRespond carries the token pair issued on login or refresh.
type LoginRespond struct {
	User         UserRespond `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}
