package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/database"
	"github.com/gamemate/gamemate/internal/httperr"
	"github.com/gamemate/gamemate/internal/models"
	"github.com/gamemate/gamemate/internal/rest"
	"github.com/gamemate/gamemate/internal/schemas"
)

// LobbyStore is the persistence collaborator for lobbies. Join and Leave
// own the membership invariants (idempotent join, capacity, author-leave
// deletion) transactionally.
type LobbyStore interface {
	Create(ctx context.Context, lobby *models.Lobby) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Lobby, error)
	List(ctx context.Context, filter database.LobbyFilter) ([]models.Lobby, error)
	Join(ctx context.Context, lobbyID, userID uuid.UUID) error
	Leave(ctx context.Context, lobbyID, userID uuid.UUID) (deleted bool, err error)
}

// Lobbies serves the /api/lobbies endpoints.
type Lobbies struct {
	Store LobbyStore
	Games GameStore
}

// Create opens a lobby authored by the principal, who becomes its first
// member.
func (h *Lobbies) Create(c *rest.Context) (*rest.Response, error) {
	in := c.Body().(*schemas.LobbyWrite)

	game, err := h.Games.FindByID(c.Context(), in.GameID)
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	if game == nil {
		return nil, httperr.NotFound("game not found")
	}

	lobby := models.Lobby{
		AuthorID:    c.Principal.ID,
		GameID:      in.GameID,
		Platform:    in.Platform,
		SkillLevel:  in.SkillLevel,
		Goal:        in.Goal,
		Slots:       in.Slots,
		Description: in.Description,
		StartTime:   in.StartTime,
	}
	if err := h.Store.Create(c.Context(), &lobby); err != nil {
		return nil, fmt.Errorf("create lobby: %w", err)
	}
	lobby.Members = []models.User{*c.Principal}

	return rest.Status(schemas.LobbyFrom(&lobby), http.StatusCreated), nil
}

// Get returns a lobby with its member list.
func (h *Lobbies) Get(c *rest.Context) (*rest.Response, error) {
	lobby, err := h.find(c)
	if err != nil {
		return nil, err
	}
	return rest.JSON(schemas.LobbyFrom(lobby)), nil
}

// List returns lobbies narrowed by the optional platform, search_game,
// min_skill, max_skill and open_slots query parameters. Each filter applies
// iff its parameter is present.
func (h *Lobbies) List(c *rest.Context) (*rest.Response, error) {
	filter := database.LobbyFilter{
		Platform: c.Query("platform"),
		GameName: c.Query("search_game"),
	}

	var err error
	if filter.MinSkill, err = intQuery(c, "min_skill"); err != nil {
		return nil, err
	}
	if filter.MaxSkill, err = intQuery(c, "max_skill"); err != nil {
		return nil, err
	}
	if c.HasQuery("open_slots") {
		filter.OpenSlots = c.Query("open_slots") != "false"
	}

	lobbies, err := h.Store.List(c.Context(), filter)
	if err != nil {
		return nil, fmt.Errorf("list lobbies: %w", err)
	}

	out := schemas.LobbyList{Lobbies: make([]schemas.LobbyRead, 0, len(lobbies))}
	for i := range lobbies {
		out.Lobbies = append(out.Lobbies, schemas.LobbyFrom(&lobbies[i]))
	}
	return rest.JSON(out), nil
}

// Join adds the principal to the lobby. Joining a lobby twice is a no-op;
// a full lobby answers 409.
func (h *Lobbies) Join(c *rest.Context) (*rest.Response, error) {
	id, err := lobbyID(c)
	if err != nil {
		return nil, err
	}

	if err := h.Store.Join(c.Context(), id, c.Principal.ID); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, httperr.NotFound("lobby not found")
		case errors.Is(err, database.ErrLobbyFull):
			return nil, httperr.Conflict("lobby has no open slots")
		default:
			return nil, fmt.Errorf("join lobby: %w", err)
		}
	}

	lobby, err := h.find(c)
	if err != nil {
		return nil, err
	}
	return rest.JSON(schemas.LobbyFrom(lobby)), nil
}

// Leave removes the principal's membership; when the author leaves the
// lobby is deleted with them.
func (h *Lobbies) Leave(c *rest.Context) (*rest.Response, error) {
	id, err := lobbyID(c)
	if err != nil {
		return nil, err
	}

	deleted, err := h.Store.Leave(c.Context(), id, c.Principal.ID)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, httperr.NotFound("lobby not found")
		case errors.Is(err, database.ErrNotMember):
			return nil, httperr.NotFound("you are not a member of this lobby")
		default:
			return nil, fmt.Errorf("leave lobby: %w", err)
		}
	}
	return rest.JSON(schemas.LobbyLeaveResponse{Deleted: deleted}), nil
}

func (h *Lobbies) find(c *rest.Context) (*models.Lobby, error) {
	id, err := lobbyID(c)
	if err != nil {
		return nil, err
	}
	lobby, err := h.Store.FindByID(c.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("find lobby: %w", err)
	}
	if lobby == nil {
		return nil, httperr.NotFound("lobby not found")
	}
	return lobby, nil
}

func lobbyID(c *rest.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("lobby_id"))
	if err != nil {
		return uuid.Nil, httperr.NotFound("lobby not found")
	}
	return id, nil
}

func intQuery(c *rest.Context, name string) (*int, error) {
	if !c.HasQuery(name) {
		return nil, nil
	}
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return nil, httperr.MalformedRequest(fmt.Sprintf("query parameter %q must be an integer", name))
	}
	return &v, nil
}
