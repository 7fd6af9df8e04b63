package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamemate/gamemate/internal/auth"
	"github.com/gamemate/gamemate/internal/models"
)

// UserStore persists users. Passwords are hashed on the way in; the stored
// Password field always holds the encoded argon2id hash.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

const userColumns = `id, username, password, gender, bio,
	COALESCE(avatar, ''), COALESCE(telegram_contact, ''),
	COALESCE(discord_contact, ''), COALESCE(steam_contact, '')`

// Create inserts a new user, hashing the plaintext password in place.
// Duplicate usernames surface as a unique violation.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate user id: %w", err)
		}
		user.ID = id
	}

	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash

	q := `INSERT INTO users (id, username, password, gender, bio,
	        avatar, telegram_contact, discord_contact, steam_contact)
	      VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))`

	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			user.ID, user.Username, user.Password, user.Gender, user.Bio,
			user.Avatar, user.TelegramContact, user.DiscordContact, user.SteamContact,
		)
		return execErr
	})
}

// FindByID returns the user with the given id, or (nil, nil) when absent.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByUsername returns the user with the given username, or (nil, nil)
// when absent.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (s *UserStore) findOne(ctx context.Context, q string, arg any) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.Username, &u.Password, &u.Gender, &u.Bio,
		&u.Avatar, &u.TelegramContact, &u.DiscordContact, &u.SteamContact,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
