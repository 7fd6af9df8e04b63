package schemas

import (
	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/models"
)

// BidWrite is the request body for POST /api/bids.
type BidWrite struct {
	GameID      uuid.UUID `json:"game_id" validate:"required"`
	Description string    `json:"description" validate:"required,min=20,max=500"`
	Details     string    `json:"details,omitempty" validate:"omitempty,max=500"`
}

// BidRead is the public view of a bid.
type BidRead struct {
	ID          uuid.UUID `json:"id"`
	GameID      uuid.UUID `json:"game_id"`
	AuthorID    uuid.UUID `json:"author_id"`
	Description string    `json:"description"`
	Details     string    `json:"details,omitempty"`
}

// BidList wraps a list of bids.
type BidList struct {
	Bids []BidRead `json:"bids"`
}

// BidFrom maps a persisted bid onto its read view.
func BidFrom(b *models.Bid) BidRead {
	return BidRead{
		ID:          b.ID,
		GameID:      b.GameID,
		AuthorID:    b.AuthorID,
		Description: b.Description,
		Details:     b.Details,
	}
}
