// internal/models/lobby.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Lobby is a time-boxed group session for a game, with capacity limits and
// many-to-many membership. Invariants maintained by the store:
// FilledSlots <= Slots, the author is always a member, and the lobby is
// deleted when the author leaves.
type Lobby struct {
	ID       uuid.UUID `json:"id"`
	AuthorID uuid.UUID `json:"author_id"`
	GameID   uuid.UUID `json:"game_id"`

	Platform    string    `json:"platform"`
	SkillLevel  int       `json:"skill_level"`
	Goal        string    `json:"goal"`
	Slots       int       `json:"slots"`
	FilledSlots int       `json:"filled_slots"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`

	Members []User `json:"members,omitempty"`
}
