package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/database"
	"github.com/gamemate/gamemate/internal/httperr"
	"github.com/gamemate/gamemate/internal/models"
	"github.com/gamemate/gamemate/internal/rest"
	"github.com/gamemate/gamemate/internal/schemas"
)

// BidStore is the persistence collaborator for bids.
type BidStore interface {
	Create(ctx context.Context, bid *models.Bid) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	List(ctx context.Context, filter database.BidFilter) ([]models.Bid, error)
}

// Bids serves the /api/bids endpoints.
type Bids struct {
	Store BidStore
	Games GameStore
}

// Create registers a bid authored by the principal. The referenced game
// must exist.
func (h *Bids) Create(c *rest.Context) (*rest.Response, error) {
	in := c.Body().(*schemas.BidWrite)

	game, err := h.Games.FindByID(c.Context(), in.GameID)
	if err != nil {
		return nil, fmt.Errorf("find game: %w", err)
	}
	if game == nil {
		return nil, httperr.NotFound("game not found")
	}

	bid := models.Bid{
		GameID:      in.GameID,
		AuthorID:    c.Principal.ID,
		Description: in.Description,
		Details:     in.Details,
	}
	if err := h.Store.Create(c.Context(), &bid); err != nil {
		return nil, fmt.Errorf("create bid: %w", err)
	}
	return rest.Status(schemas.BidFrom(&bid), http.StatusCreated), nil
}

// List returns bids, optionally narrowed by description substring and game
// name. A game_search naming no known game yields an empty list.
func (h *Bids) List(c *rest.Context) (*rest.Response, error) {
	filter := database.BidFilter{Description: c.Query("description_search")}

	if name := c.Query("game_search"); name != "" {
		game, err := h.Games.FindByName(c.Context(), name)
		if err != nil {
			return nil, fmt.Errorf("find game: %w", err)
		}
		if game == nil {
			return rest.JSON(schemas.BidList{Bids: []schemas.BidRead{}}), nil
		}
		filter.GameID = &game.ID
	}

	bids, err := h.Store.List(c.Context(), filter)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	out := schemas.BidList{Bids: make([]schemas.BidRead, 0, len(bids))}
	for i := range bids {
		out.Bids = append(out.Bids, schemas.BidFrom(&bids[i]))
	}
	return rest.JSON(out), nil
}

// Get returns a single bid by id.
func (h *Bids) Get(c *rest.Context) (*rest.Response, error) {
	id, err := uuid.Parse(c.Param("bid_id"))
	if err != nil {
		return nil, httperr.NotFound("bid not found")
	}

	bid, err := h.Store.FindByID(c.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("find bid: %w", err)
	}
	if bid == nil {
		return nil, httperr.NotFound("bid not found")
	}
	return rest.JSON(schemas.BidFrom(bid)), nil
}
