package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamemate/gamemate/internal/config"
)

// Sentinel errors shared by the entity stores. Handlers map these onto the
// HTTP error taxonomy.
var (
	ErrNotFound  = errors.New("record not found")
	ErrLobbyFull = errors.New("lobby has no open slots")
	ErrNotMember = errors.New("user is not a member of this lobby")
)

// Connect opens a pgx pool against the configured Postgres and pings it.
func Connect(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		password VARCHAR(300) NOT NULL,
		gender VARCHAR(30) NOT NULL,
		bio TEXT NOT NULL,
		avatar VARCHAR(200),
		telegram_contact VARCHAR(50),
		discord_contact VARCHAR(50),
		steam_contact VARCHAR(50)
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description VARCHAR(500) NOT NULL,
		release_date DATE NOT NULL,
		genre VARCHAR(50),
		url_image VARCHAR(200)
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id UUID PRIMARY KEY,
		game_id UUID NOT NULL REFERENCES games(id),
		author_id UUID NOT NULL REFERENCES users(id),
		description VARCHAR(500) NOT NULL,
		details VARCHAR(500)
	)`,
	`CREATE TABLE IF NOT EXISTS lobbies (
		id UUID PRIMARY KEY,
		author_id UUID NOT NULL REFERENCES users(id),
		game_id UUID NOT NULL REFERENCES games(id),
		platform VARCHAR(30) NOT NULL,
		skill_level INT NOT NULL,
		goal VARCHAR(100) NOT NULL,
		slots INT NOT NULL,
		filled_slots INT NOT NULL DEFAULT 0,
		description TEXT NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		CHECK (filled_slots <= slots)
	)`,
	`CREATE TABLE IF NOT EXISTS lobby_members (
		lobby_id UUID NOT NULL REFERENCES lobbies(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id),
		PRIMARY KEY (lobby_id, user_id)
	)`,
}

// EnsureSchema creates the tables if they do not exist yet. Real migrations
// live outside the service; this only bootstraps a fresh database.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
