package models

import "github.com/google/uuid"

// User is a row in the users table. Password always holds the encoded
// argon2id hash once the user has been persisted.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"-"`

	Gender string `json:"gender"` // 'male' or 'female'
	Bio    string `json:"bio"`
	Avatar string `json:"avatar,omitempty"`

	TelegramContact string `json:"telegram_contact,omitempty"`
	DiscordContact  string `json:"discord_contact,omitempty"`
	SteamContact    string `json:"steam_contact,omitempty"`
}
