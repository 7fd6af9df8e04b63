package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/gamemate/gamemate/internal/auth"
	"github.com/gamemate/gamemate/internal/database"
	"github.com/gamemate/gamemate/internal/models"
	"github.com/gamemate/gamemate/internal/rest"
)

// In-memory stores implementing the documented collaborator contracts, so
// handler tests run without Postgres.

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uuid.UUID]*models.User{}}
}

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	user.ID = uuid.New()
	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hash
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type memGameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*models.Game
}

func newMemGameStore() *memGameStore {
	return &memGameStore{games: map[uuid.UUID]*models.Game{}}
}

func (s *memGameStore) Create(_ context.Context, game *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game.ID = uuid.New()
	cp := *game
	s.games[game.ID] = &cp
	return nil
}

func (s *memGameStore) FindByID(_ context.Context, id uuid.UUID) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.games[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (s *memGameStore) FindByName(_ context.Context, name string) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.games {
		if g.Name == name {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memGameStore) List(_ context.Context) ([]models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Game, 0, len(s.games))
	for _, g := range s.games {
		out = append(out, *g)
	}
	return out, nil
}

type memBidStore struct {
	mu   sync.Mutex
	bids []models.Bid

	lastFilter *database.BidFilter
}

func (s *memBidStore) Create(_ context.Context, bid *models.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid.ID = uuid.New()
	s.bids = append(s.bids, *bid)
	return nil
}

func (s *memBidStore) FindByID(_ context.Context, id uuid.UUID) (*models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bids {
		if s.bids[i].ID == id {
			cp := s.bids[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memBidStore) List(_ context.Context, filter database.BidFilter) ([]models.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = &filter

	var out []models.Bid
	for _, b := range s.bids {
		if filter.GameID != nil && b.GameID != *filter.GameID {
			continue
		}
		if filter.Description != "" && !containsFold(b.Description, filter.Description) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type memLobbyStore struct {
	mu      sync.Mutex
	lobbies map[uuid.UUID]*models.Lobby
	members map[uuid.UUID]map[uuid.UUID]models.User

	lastFilter *database.LobbyFilter
}

func newMemLobbyStore() *memLobbyStore {
	return &memLobbyStore{
		lobbies: map[uuid.UUID]*models.Lobby{},
		members: map[uuid.UUID]map[uuid.UUID]models.User{},
	}
}

func (s *memLobbyStore) Create(_ context.Context, lobby *models.Lobby) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lobby.ID = uuid.New()
	lobby.FilledSlots = 1
	cp := *lobby
	s.lobbies[lobby.ID] = &cp
	s.members[lobby.ID] = map[uuid.UUID]models.User{
		lobby.AuthorID: {ID: lobby.AuthorID},
	}
	return nil
}

func (s *memLobbyStore) FindByID(_ context.Context, id uuid.UUID) (*models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lobbies[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	for _, u := range s.members[id] {
		cp.Members = append(cp.Members, u)
	}
	return &cp, nil
}

func (s *memLobbyStore) List(_ context.Context, filter database.LobbyFilter) ([]models.Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = &filter

	var out []models.Lobby
	for _, l := range s.lobbies {
		if filter.Platform != "" && l.Platform != filter.Platform {
			continue
		}
		if filter.MinSkill != nil && l.SkillLevel < *filter.MinSkill {
			continue
		}
		if filter.MaxSkill != nil && l.SkillLevel > *filter.MaxSkill {
			continue
		}
		if filter.OpenSlots && l.FilledSlots >= l.Slots {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (s *memLobbyStore) Join(_ context.Context, lobbyID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lobbies[lobbyID]
	if !ok {
		return database.ErrNotFound
	}
	if _, member := s.members[lobbyID][userID]; member {
		return nil
	}
	if l.FilledSlots >= l.Slots {
		return database.ErrLobbyFull
	}
	s.members[lobbyID][userID] = models.User{ID: userID}
	l.FilledSlots = len(s.members[lobbyID])
	return nil
}

func (s *memLobbyStore) Leave(_ context.Context, lobbyID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lobbies[lobbyID]
	if !ok {
		return false, database.ErrNotFound
	}
	if l.AuthorID == userID {
		delete(s.lobbies, lobbyID)
		delete(s.members, lobbyID)
		return true, nil
	}
	if _, member := s.members[lobbyID][userID]; !member {
		return false, database.ErrNotMember
	}
	delete(s.members[lobbyID], userID)
	l.FilledSlots = len(s.members[lobbyID])
	return false, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// testEnv wires the full pipeline over the in-memory stores.
type testEnv struct {
	mux     *http.ServeMux
	tokens  *auth.TokenService
	users   *memUserStore
	games   *memGameStore
	bids    *memBidStore
	lobbies *memLobbyStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		tokens:  auth.NewTokenService("test-secret", time.Hour),
		users:   newMemUserStore(),
		games:   newMemGameStore(),
		bids:    &memBidStore{},
		lobbies: newMemLobbyStore(),
	}

	api := rest.New(logrus.New(), env.tokens, env.users)
	RegisterRoutes(api,
		&Users{Store: env.users, Tokens: env.tokens},
		&Games{Store: env.games, Cache: nil},
		&Bids{Store: env.bids, Games: env.games},
		&Lobbies{Store: env.lobbies, Games: env.games},
	)

	env.mux = http.NewServeMux()
	api.Mount(env.mux)
	return env
}

// addUser creates a user directly and returns it with a valid token.
func (e *testEnv) addUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	u := &models.User{Username: username, Password: "Abc12345!", Gender: "male", Bio: "bio"}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := e.tokens.Issue(u.ID.String())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return u, token
}

// addGame creates a game directly.
func (e *testEnv) addGame(t *testing.T, name string) *models.Game {
	t.Helper()
	g := &models.Game{Name: name, Description: "a game", ReleaseDate: models.NewDate(2020, 1, 1)}
	if err := e.games.Create(context.Background(), g); err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g
}
