package schemas

import (
	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/models"
)

// GameWrite is the request body for POST /api/games.
type GameWrite struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Description string      `json:"description" validate:"required,max=500"`
	ReleaseDate models.Date `json:"release_date" validate:"required"`
	Genre       string      `json:"genre,omitempty" validate:"omitempty,max=50"`
	URLImage    string      `json:"url_image,omitempty" validate:"omitempty,max=200"`
}

// GameRead is the public view of a game.
type GameRead struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ReleaseDate models.Date `json:"release_date"`
	Genre       string      `json:"genre,omitempty"`
	URLImage    string      `json:"url_image,omitempty"`
}

// GameList wraps a list of games.
type GameList struct {
	Games []GameRead `json:"games"`
}

// GameFrom maps a persisted game onto its read view.
func GameFrom(g *models.Game) GameRead {
	return GameRead{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		ReleaseDate: g.ReleaseDate,
		Genre:       g.Genre,
		URLImage:    g.URLImage,
	}
}
