package models

import "github.com/google/uuid"

// Bid is an offer/request tied to a game, authored by a user.
type Bid struct {
	ID          uuid.UUID `json:"id"`
	GameID      uuid.UUID `json:"game_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Description string    `json:"description"`
	Details     string    `json:"details,omitempty"`
}
