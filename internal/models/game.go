package models

import "github.com/google/uuid"

// Game is a row in the games table. Read-heavy; created via an admin-style
// POST and never updated in-app.
type Game struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate Date      `json:"release_date"`
	Genre       string    `json:"genre,omitempty"`
	URLImage    string    `json:"url_image,omitempty"`
}
