package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamemate/gamemate/internal/models"
)

// GameStore persists games.
type GameStore struct {
	pool *pgxpool.Pool
}

func NewGameStore(pool *pgxpool.Pool) *GameStore {
	return &GameStore{pool: pool}
}

const gameColumns = `id, name, description, release_date,
	COALESCE(genre, ''), COALESCE(url_image, '')`

func (s *GameStore) Create(ctx context.Context, game *models.Game) error {
	if game.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate game id: %w", err)
		}
		game.ID = id
	}

	q := `INSERT INTO games (id, name, description, release_date, genre, url_image)
	      VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))`

	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			game.ID, game.Name, game.Description, game.ReleaseDate.Time,
			game.Genre, game.URLImage,
		)
		return execErr
	})
}

// FindByID returns the game with the given id, or (nil, nil) when absent.
func (s *GameStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	return s.findOne(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
}

// FindByName returns the game with the exact name, or (nil, nil) when
// absent. Used to resolve the bid list's game_search filter.
func (s *GameStore) FindByName(ctx context.Context, name string) (*models.Game, error) {
	return s.findOne(ctx, `SELECT `+gameColumns+` FROM games WHERE name = $1`, name)
}

// List returns all games ordered by name.
func (s *GameStore) List(ctx context.Context) ([]models.Game, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+gameColumns+` FROM games ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

func (s *GameStore) findOne(ctx context.Context, q string, arg any) (*models.Game, error) {
	g, err := scanGame(s.pool.QueryRow(ctx, q, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func scanGame(row pgx.Row) (*models.Game, error) {
	var g models.Game
	if err := row.Scan(&g.ID, &g.Name, &g.Description, &g.ReleaseDate.Time, &g.Genre, &g.URLImage); err != nil {
		return nil, err
	}
	return &g, nil
}
