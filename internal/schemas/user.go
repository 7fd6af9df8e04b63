// Package schemas declares the JSON shapes used for request validation and
// response serialization. The same types double as the source for the
// generated API description, so there is a single definition per shape.
package schemas

import (
	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/models"
)

// UserSignup is the request body for POST /api/users/signup.
type UserSignup struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8,max=60,strongpassword"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
	Bio      string `json:"bio" validate:"required"`

	Avatar          string `json:"avatar,omitempty" validate:"omitempty,max=200"`
	TelegramContact string `json:"telegram_contact,omitempty" validate:"omitempty,max=50"`
	DiscordContact  string `json:"discord_contact,omitempty" validate:"omitempty,max=50"`
	SteamContact    string `json:"steam_contact,omitempty" validate:"omitempty,max=50"`
}

// UserLogin is the request body for POST /api/users/login.
type UserLogin struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8,max=60"`
}

// UserProfile is the public view of a user.
type UserProfile struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Gender   string    `json:"gender"`
	Bio      string    `json:"bio"`

	Avatar          string `json:"avatar,omitempty"`
	TelegramContact string `json:"telegram_contact,omitempty"`
	DiscordContact  string `json:"discord_contact,omitempty"`
	SteamContact    string `json:"steam_contact,omitempty"`
}

// ProfileFrom maps a persisted user onto its public profile view.
func ProfileFrom(u *models.User) UserProfile {
	return UserProfile{
		ID:              u.ID,
		Username:        u.Username,
		Gender:          u.Gender,
		Bio:             u.Bio,
		Avatar:          u.Avatar,
		TelegramContact: u.TelegramContact,
		DiscordContact:  u.DiscordContact,
		SteamContact:    u.SteamContact,
	}
}

// TokenResponse carries a fresh bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// AuthResponse is returned on signup: a token plus the echoed profile.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
