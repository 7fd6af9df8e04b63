package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/cache"
	"github.com/gamemate/gamemate/internal/models"
	"github.com/gamemate/gamemate/internal/rest"
	"github.com/gamemate/gamemate/internal/schemas"
)

// GameStore is the persistence collaborator for games.
type GameStore interface {
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	FindByName(ctx context.Context, name string) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
}

// Games serves the /api/games endpoints.
type Games struct {
	Store GameStore
	Cache *cache.GameCache
}

// List returns every game, served from the read cache when warm.
func (h *Games) List(c *rest.Context) (*rest.Response, error) {
	games, ok := h.Cache.GetList(c.Context())
	if !ok {
		var err error
		games, err = h.Store.List(c.Context())
		if err != nil {
			return nil, fmt.Errorf("list games: %w", err)
		}
		h.Cache.SetList(c.Context(), games)
	}

	out := schemas.GameList{Games: make([]schemas.GameRead, 0, len(games))}
	for i := range games {
		out.Games = append(out.Games, schemas.GameFrom(&games[i]))
	}
	return rest.JSON(out), nil
}

// Create registers a new game and drops the cached list.
func (h *Games) Create(c *rest.Context) (*rest.Response, error) {
	in := c.Body().(*schemas.GameWrite)

	game := models.Game{
		Name:        in.Name,
		Description: in.Description,
		ReleaseDate: in.ReleaseDate,
		Genre:       in.Genre,
		URLImage:    in.URLImage,
	}
	if err := h.Store.Create(c.Context(), &game); err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	h.Cache.Invalidate(c.Context())

	return rest.Status(schemas.GameFrom(&game), http.StatusCreated), nil
}
