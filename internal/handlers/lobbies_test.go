package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamemate/gamemate/internal/schemas"
)

func (e *testEnv) createLobby(t *testing.T, token, gameID string, slots int) schemas.LobbyRead {
	t.Helper()
	return e.createLobbyOn(t, token, gameID, "pc", 5, slots)
}

func (e *testEnv) createLobbyOn(t *testing.T, token, gameID, platform string, skill, slots int) schemas.LobbyRead {
	t.Helper()
	body := `{
		"game_id": "` + gameID + `",
		"platform": "` + platform + `",
		"skill_level": ` + strconv.Itoa(skill) + `,
		"goal": "ranked grind",
		"slots": ` + strconv.Itoa(slots) + `,
		"description": "evening session",
		"start_time": "2026-09-01T19:00:00Z"
	}`
	req := httptest.NewRequest("POST", "/api/lobbies/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	var lobby schemas.LobbyRead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lobby))
	return lobby
}

func (e *testEnv) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func TestCreateLobby(t *testing.T) {
	env := newTestEnv(t)
	author, token := env.addUser(t, "alice")
	game := env.addGame(t, "Valorant")

	lobby := env.createLobby(t, token, game.ID.String(), 5)
	assert.Equal(t, author.ID, lobby.Author.ID)
	assert.Equal(t, 1, lobby.FilledSlots, "author occupies the first slot")
	assert.Len(t, lobby.Members, 1)
}

func TestJoinLobbyIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	_, authorToken := env.addUser(t, "alice")
	_, joinerToken := env.addUser(t, "bob")
	game := env.addGame(t, "Valorant")
	lobby := env.createLobby(t, authorToken, game.ID.String(), 5)

	w := env.do("PATCH", "/api/lobbies/"+lobby.ID.String()+"/join", joinerToken)
	require.Equal(t, 200, w.Code, w.Body.String())

	var joined schemas.LobbyRead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &joined))
	assert.Equal(t, 2, joined.FilledSlots)

	// joining again must not bump filled_slots
	w = env.do("PATCH", "/api/lobbies/"+lobby.ID.String()+"/join", joinerToken)
	require.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &joined))
	assert.Equal(t, 2, joined.FilledSlots, "double join must not double count")
}

func TestJoinFullLobby(t *testing.T) {
	env := newTestEnv(t)
	_, authorToken := env.addUser(t, "alice")
	_, bobToken := env.addUser(t, "bob")
	_, carolToken := env.addUser(t, "carol")
	game := env.addGame(t, "It Takes Two")
	lobby := env.createLobby(t, authorToken, game.ID.String(), 2)

	require.Equal(t, 200, env.do("PATCH", "/api/lobbies/"+lobby.ID.String()+"/join", bobToken).Code)

	w := env.do("PATCH", "/api/lobbies/"+lobby.ID.String()+"/join", carolToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no open slots")
}

func TestLeaveLobby(t *testing.T) {
	env := newTestEnv(t)
	_, authorToken := env.addUser(t, "alice")
	_, bobToken := env.addUser(t, "bob")
	game := env.addGame(t, "Valorant")
	lobby := env.createLobby(t, authorToken, game.ID.String(), 5)
	path := "/api/lobbies/" + lobby.ID.String()

	require.Equal(t, 200, env.do("PATCH", path+"/join", bobToken).Code)

	// member leaves: membership removed, lobby stays
	w := env.do("DELETE", path+"/leave", bobToken)
	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"deleted":false}`, w.Body.String())
	assert.Equal(t, 200, env.do("GET", path, "").Code)

	// leaving again: no longer a member
	assert.Equal(t, 404, env.do("DELETE", path+"/leave", bobToken).Code)

	// author leaves: lobby deleted with them
	w = env.do("DELETE", path+"/leave", authorToken)
	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"deleted":true}`, w.Body.String())
	assert.Equal(t, 404, env.do("GET", path, "").Code)
}

func TestListLobbiesFilters(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.addUser(t, "alice")
	_, bobToken := env.addUser(t, "bob")
	game := env.addGame(t, "Rocket League")

	casual := env.createLobbyOn(t, aliceToken, game.ID.String(), "pc", 3, 2)
	ranked := env.createLobbyOn(t, bobToken, game.ID.String(), "ps5", 8, 3)

	list := func(query string) schemas.LobbyList {
		w := env.do("GET", "/api/lobbies/"+query, "")
		require.Equal(t, 200, w.Code, w.Body.String())
		var out schemas.LobbyList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	assert.Len(t, list("").Lobbies, 2, "no filters, no narrowing")

	got := list("?platform=pc")
	require.Len(t, got.Lobbies, 1)
	assert.Equal(t, casual.ID, got.Lobbies[0].ID)
	assert.Equal(t, "pc", env.lobbies.lastFilter.Platform)

	got = list("?min_skill=5")
	require.Len(t, got.Lobbies, 1)
	assert.Equal(t, ranked.ID, got.Lobbies[0].ID)
	require.NotNil(t, env.lobbies.lastFilter.MinSkill)
	assert.Equal(t, 5, *env.lobbies.lastFilter.MinSkill)

	got = list("?max_skill=5")
	require.Len(t, got.Lobbies, 1)
	assert.Equal(t, casual.ID, got.Lobbies[0].ID)
	require.NotNil(t, env.lobbies.lastFilter.MaxSkill)
	assert.Equal(t, 5, *env.lobbies.lastFilter.MaxSkill)

	// the handler resolves the game name, the store sees the raw filter
	list("?search_game=Rocket")
	assert.Equal(t, "Rocket", env.lobbies.lastFilter.GameName)

	// fill the casual lobby, then only the ranked one has open slots
	require.Equal(t, 200, env.do("PATCH", "/api/lobbies/"+casual.ID.String()+"/join", bobToken).Code)
	got = list("?open_slots=true")
	require.Len(t, got.Lobbies, 1)
	assert.Equal(t, ranked.ID, got.Lobbies[0].ID)
	assert.True(t, env.lobbies.lastFilter.OpenSlots)

	assert.Len(t, list("?open_slots=false").Lobbies, 2)
	assert.False(t, env.lobbies.lastFilter.OpenSlots)
}

func TestListLobbiesBadSkillBound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("GET", "/api/lobbies/?min_skill=abc", "")
	require.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "must be an integer")
}

func TestLobbyNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice")

	missing := "/api/lobbies/00000000-0000-0000-0000-000000000001"
	assert.Equal(t, 404, env.do("GET", missing, "").Code)
	assert.Equal(t, 404, env.do("PATCH", missing+"/join", token).Code)
	assert.Equal(t, 404, env.do("DELETE", missing+"/leave", token).Code)
}

func TestCreateLobbyUnknownGame(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice")

	body := `{
		"game_id": "00000000-0000-0000-0000-000000000001",
		"platform": "pc",
		"skill_level": 5,
		"goal": "ranked grind",
		"slots": 5,
		"description": "evening session",
		"start_time": "2026-09-01T19:00:00Z"
	}`
	req := httptest.NewRequest("POST", "/api/lobbies/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestCreateLobbyValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice")
	game := env.addGame(t, "Valorant")

	// skill_level out of range
	body := `{
		"game_id": "` + game.ID.String() + `",
		"platform": "pc",
		"skill_level": 11,
		"goal": "ranked grind",
		"slots": 5,
		"description": "evening session",
		"start_time": "2026-09-01T19:00:00Z"
	}`
	req := httptest.NewRequest("POST", "/api/lobbies/", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)
	require.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), `"skill_level"`)
}
