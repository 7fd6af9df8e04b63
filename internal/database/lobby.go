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

// LobbyStore persists lobbies and their membership. All writes run in one
// transaction and keep the invariants: filled_slots <= slots, filled_slots
// mirrors the membership table, the author is always a member, and the
// lobby is deleted when the author leaves.
type LobbyStore struct {
	pool *pgxpool.Pool
}

func NewLobbyStore(pool *pgxpool.Pool) *LobbyStore {
	return &LobbyStore{pool: pool}
}

// LobbyFilter narrows List. Each filter applies iff it is set.
type LobbyFilter struct {
	Platform  string
	GameName  string
	MinSkill  *int
	MaxSkill  *int
	OpenSlots bool
}

const lobbyColumns = `l.id, l.author_id, l.game_id, l.platform, l.skill_level,
	l.goal, l.slots, l.filled_slots, l.description, l.start_time`

// Create inserts the lobby with its author as first member.
func (s *LobbyStore) Create(ctx context.Context, lobby *models.Lobby) error {
	if lobby.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("generate lobby id: %w", err)
		}
		lobby.ID = id
	}
	lobby.FilledSlots = 1

	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		q := `INSERT INTO lobbies (id, author_id, game_id, platform, skill_level,
		        goal, slots, filled_slots, description, start_time)
		      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		if _, err := tx.Exec(ctx, q,
			lobby.ID, lobby.AuthorID, lobby.GameID, lobby.Platform, lobby.SkillLevel,
			lobby.Goal, lobby.Slots, lobby.FilledSlots, lobby.Description, lobby.StartTime,
		); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO lobby_members (lobby_id, user_id) VALUES ($1, $2)`,
			lobby.ID, lobby.AuthorID)
		return err
	})
}

// FindByID returns the lobby with members loaded, or (nil, nil) when absent.
func (s *LobbyStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Lobby, error) {
	var l models.Lobby
	err := s.pool.QueryRow(ctx,
		`SELECT `+lobbyColumns+` FROM lobbies l WHERE l.id = $1`, id).Scan(
		&l.ID, &l.AuthorID, &l.GameID, &l.Platform, &l.SkillLevel,
		&l.Goal, &l.Slots, &l.FilledSlots, &l.Description, &l.StartTime,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	members, err := s.loadMembers(ctx, []uuid.UUID{l.ID})
	if err != nil {
		return nil, err
	}
	l.Members = members[l.ID]
	return &l, nil
}

// List returns lobbies matching the filter, members loaded.
func (s *LobbyStore) List(ctx context.Context, filter LobbyFilter) ([]models.Lobby, error) {
	q := `SELECT ` + lobbyColumns + ` FROM lobbies l JOIN games g ON g.id = l.game_id`
	var conds []string
	var args []any

	if filter.Platform != "" {
		args = append(args, filter.Platform)
		conds = append(conds, "l.platform = $"+strconv.Itoa(len(args)))
	}
	if filter.GameName != "" {
		args = append(args, "%"+filter.GameName+"%")
		conds = append(conds, "g.name ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.MinSkill != nil {
		args = append(args, *filter.MinSkill)
		conds = append(conds, "l.skill_level >= $"+strconv.Itoa(len(args)))
	}
	if filter.MaxSkill != nil {
		args = append(args, *filter.MaxSkill)
		conds = append(conds, "l.skill_level <= $"+strconv.Itoa(len(args)))
	}
	if filter.OpenSlots {
		conds = append(conds, "l.filled_slots < l.slots")
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY l.start_time, l.id"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lobbies []models.Lobby
	var ids []uuid.UUID
	for rows.Next() {
		var l models.Lobby
		if err := rows.Scan(
			&l.ID, &l.AuthorID, &l.GameID, &l.Platform, &l.SkillLevel,
			&l.Goal, &l.Slots, &l.FilledSlots, &l.Description, &l.StartTime,
		); err != nil {
			return nil, err
		}
		lobbies = append(lobbies, l)
		ids = append(ids, l.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	members, err := s.loadMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range lobbies {
		lobbies[i].Members = members[lobbies[i].ID]
	}
	return lobbies, nil
}

// Join adds the user to the lobby. Joining twice is a no-op; a full lobby
// returns ErrLobbyFull; a missing lobby returns ErrNotFound. The lobby row
// is locked for the duration so concurrent joins cannot oversubscribe.
func (s *LobbyStore) Join(ctx context.Context, lobbyID, userID uuid.UUID) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var slots, filled int
		err := tx.QueryRow(ctx,
			`SELECT slots, filled_slots FROM lobbies WHERE id = $1 FOR UPDATE`,
			lobbyID).Scan(&slots, &filled)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var member bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM lobby_members WHERE lobby_id = $1 AND user_id = $2)`,
			lobbyID, userID).Scan(&member); err != nil {
			return err
		}
		if member {
			return nil
		}
		if filled >= slots {
			return ErrLobbyFull
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO lobby_members (lobby_id, user_id) VALUES ($1, $2)
			 ON CONFLICT DO NOTHING`, lobbyID, userID); err != nil {
			return err
		}
		return s.syncFilledSlots(ctx, tx, lobbyID)
	})
}

// Leave removes the user's membership. When the leaver is the author, the
// whole lobby is deleted and deleted=true is returned. A missing lobby
// returns ErrNotFound, a non-member ErrNotMember.
func (s *LobbyStore) Leave(ctx context.Context, lobbyID, userID uuid.UUID) (deleted bool, err error) {
	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var authorID uuid.UUID
		qerr := tx.QueryRow(ctx,
			`SELECT author_id FROM lobbies WHERE id = $1 FOR UPDATE`,
			lobbyID).Scan(&authorID)
		if errors.Is(qerr, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if qerr != nil {
			return qerr
		}

		if authorID == userID {
			// membership rows cascade
			if _, derr := tx.Exec(ctx, `DELETE FROM lobbies WHERE id = $1`, lobbyID); derr != nil {
				return derr
			}
			deleted = true
			return nil
		}

		tag, derr := tx.Exec(ctx,
			`DELETE FROM lobby_members WHERE lobby_id = $1 AND user_id = $2`,
			lobbyID, userID)
		if derr != nil {
			return derr
		}
		if tag.RowsAffected() == 0 {
			return ErrNotMember
		}
		return s.syncFilledSlots(ctx, tx, lobbyID)
	})
	return deleted, err
}

// syncFilledSlots recomputes filled_slots from the membership table inside
// the caller's transaction.
func (s *LobbyStore) syncFilledSlots(ctx context.Context, tx pgx.Tx, lobbyID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE lobbies
		SET filled_slots = (SELECT COUNT(*) FROM lobby_members WHERE lobby_id = $1)
		WHERE id = $1`, lobbyID)
	return err
}

func (s *LobbyStore) loadMembers(ctx context.Context, lobbyIDs []uuid.UUID) (map[uuid.UUID][]models.User, error) {
	out := make(map[uuid.UUID][]models.User, len(lobbyIDs))
	if len(lobbyIDs) == 0 {
		return out, nil
	}

	q := `
	SELECT m.lobby_id, u.id, u.username, u.gender, u.bio,
	       COALESCE(u.avatar, ''), COALESCE(u.telegram_contact, ''),
	       COALESCE(u.discord_contact, ''), COALESCE(u.steam_contact, '')
	FROM lobby_members m
	JOIN users u ON u.id = m.user_id
	WHERE m.lobby_id = ANY($1)
	ORDER BY u.username`
	rows, err := s.pool.Query(ctx, q, lobbyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var lobbyID uuid.UUID
		var u models.User
		if err := rows.Scan(
			&lobbyID, &u.ID, &u.Username, &u.Gender, &u.Bio,
			&u.Avatar, &u.TelegramContact, &u.DiscordContact, &u.SteamContact,
		); err != nil {
			return nil, err
		}
		out[lobbyID] = append(out[lobbyID], u)
	}
	return out, rows.Err()
}
