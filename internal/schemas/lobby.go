package schemas

import (
	"time"

	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/models"
)

// LobbyWrite is the request body for POST /api/lobbies/.
type LobbyWrite struct {
	GameID      uuid.UUID `json:"game_id" validate:"required"`
	Platform    string    `json:"platform" validate:"required,max=30"`
	SkillLevel  int       `json:"skill_level" validate:"required,gte=1,lte=10"`
	Goal        string    `json:"goal" validate:"required,max=100"`
	Slots       int       `json:"slots" validate:"required,gte=1,lte=20"`
	Description string    `json:"description" validate:"required"`
	StartTime   time.Time `json:"start_time" validate:"required"`
}

// LobbyRead is the public view of a lobby, members included.
type LobbyRead struct {
	ID          uuid.UUID     `json:"id"`
	GameID      uuid.UUID     `json:"game_id"`
	Author      UserProfile   `json:"author"`
	Platform    string        `json:"platform"`
	SkillLevel  int           `json:"skill_level"`
	Goal        string        `json:"goal"`
	Slots       int           `json:"slots"`
	FilledSlots int           `json:"filled_slots"`
	Description string        `json:"description"`
	StartTime   time.Time     `json:"start_time"`
	Members     []UserProfile `json:"members"`
}

// LobbyList wraps a list of lobbies.
type LobbyList struct {
	Lobbies []LobbyRead `json:"lobbies"`
}

// LobbyLeaveResponse reports the outcome of leaving a lobby. Deleted is true
// when the leaver was the author and the lobby was removed with them.
type LobbyLeaveResponse struct {
	Deleted bool `json:"deleted"`
}

// LobbyFrom maps a persisted lobby (with members loaded) onto its read view.
// The author profile is resolved from the member list.
func LobbyFrom(l *models.Lobby) LobbyRead {
	out := LobbyRead{
		ID:          l.ID,
		GameID:      l.GameID,
		Platform:    l.Platform,
		SkillLevel:  l.SkillLevel,
		Goal:        l.Goal,
		Slots:       l.Slots,
		FilledSlots: l.FilledSlots,
		Description: l.Description,
		StartTime:   l.StartTime,
		Members:     make([]UserProfile, 0, len(l.Members)),
	}
	for i := range l.Members {
		p := ProfileFrom(&l.Members[i])
		out.Members = append(out.Members, p)
		if l.Members[i].ID == l.AuthorID {
			out.Author = p
		}
	}
	return out
}
