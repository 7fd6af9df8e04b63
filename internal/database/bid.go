package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamemate/gamemate/internal/models"
)

// BidStore persists bids.
type BidStore struct {
	pool *pgxpool.Pool
}

func NewBidStore(pool *pgxpool.Pool) *BidStore {
	return &BidStore{pool: pool}
}

// BidFilter narrows List. Each filter applies iff it is set; unset filters
// never constrain the result.
type BidFilter struct {
	Description string
	GameID      *uuid.UUID
}

const bidColumns = `id, game_id, author_id, description, COALESCE(details, '')`

func (s *BidStore) Create(ctx context.Context, bid *models.Bid) error {
	if bid.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate bid id: %w", err)
		}
		bid.ID = id
	}

	q := `INSERT INTO bids (id, game_id, author_id, description, details)
	      VALUES ($1, $2, $3, $4, NULLIF($5, ''))`

	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, bid.ID, bid.GameID, bid.AuthorID, bid.Description, bid.Details)
		return execErr
	})
}

// FindByID returns the bid with the given id, or (nil, nil) when absent.
func (s *BidStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var b models.Bid
	err := s.pool.QueryRow(ctx, `SELECT `+bidColumns+` FROM bids WHERE id = $1`, id).
		Scan(&b.ID, &b.GameID, &b.AuthorID, &b.Description, &b.Details)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns bids matching the filter, ordered by id for stable paging.
func (s *BidStore) List(ctx context.Context, filter BidFilter) ([]models.Bid, error) {
	q := `SELECT ` + bidColumns + ` FROM bids`
	var conds []string
	var args []any

	if filter.Description != "" {
		args = append(args, "%"+filter.Description+"%")
		conds = append(conds, "description ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.GameID != nil {
		args = append(args, *filter.GameID)
		conds = append(conds, "game_id = $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var b models.Bid
		if err := rows.Scan(&b.ID, &b.GameID, &b.AuthorID, &b.Description, &b.Details); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}
