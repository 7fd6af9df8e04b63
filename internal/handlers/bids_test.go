package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamemate/gamemate/internal/schemas"
)

func TestCreateBid(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.addUser(t, "alice")
	game := env.addGame(t, "Deep Rock Galactic")

	body := `{"game_id":"` + game.ID.String() + `","description":"Looking for a chill mining crew tonight"}`
	req := httptest.NewRequest("POST", "/api/bids", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code, w.Body.String())

	var bid schemas.BidRead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bid))
	assert.Equal(t, game.ID, bid.GameID)
	assert.Equal(t, user.ID, bid.AuthorID, "author comes from the token, not the body")
}

func TestCreateBidUnknownGame(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice")

	body := `{"game_id":"00000000-0000-0000-0000-000000000001","description":"this game does not exist here"}`
	req := httptest.NewRequest("POST", "/api/bids", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestCreateBidRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	game := env.addGame(t, "Factorio")

	body := `{"game_id":"` + game.ID.String() + `","description":"the factory must grow and grow"}`
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, httptest.NewRequest("POST", "/api/bids", strings.NewReader(body)))
	assert.Equal(t, 401, w.Code)
}

func TestCreateBidShortDescription(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice")
	game := env.addGame(t, "Factorio")

	body := `{"game_id":"` + game.ID.String() + `","description":"too short"}`
	req := httptest.NewRequest("POST", "/api/bids", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)
	require.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), `"description"`)
}

func TestListBidsFilters(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.addUser(t, "alice")
	drg := env.addGame(t, "Deep Rock Galactic")
	fct := env.addGame(t, "Factorio")

	mkBid := func(gameID, desc string) {
		w := httptest.NewRecorder()
		token, _ := env.tokens.Issue(user.ID.String())
		req := httptest.NewRequest("POST", "/api/bids",
			strings.NewReader(`{"game_id":"`+gameID+`","description":"`+desc+`"}`))
		req.Header.Set("Authorization", "Bearer "+token)
		env.mux.ServeHTTP(w, req)
		require.Equal(t, 201, w.Code, w.Body.String())
	}
	mkBid(drg.ID.String(), "mining crew wanted for haz5 runs")
	mkBid(fct.ID.String(), "megabase planning session this weekend")

	list := func(query string) schemas.BidList {
		w := httptest.NewRecorder()
		env.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/bids"+query, nil))
		require.Equal(t, 200, w.Code)
		var out schemas.BidList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	assert.Len(t, list("").Bids, 2, "no filters, no narrowing")
	assert.Len(t, list("?description_search=mining").Bids, 1)
	assert.Len(t, list("?game_search=Factorio").Bids, 1)
	assert.Len(t, list("?game_search=Factorio&description_search=megabase").Bids, 1)
	assert.Empty(t, list("?game_search=No%20Such%20Game").Bids, "unknown game yields an empty list")
}

func TestGetBid(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.addUser(t, "alice")
	game := env.addGame(t, "Factorio")

	req := httptest.NewRequest("POST", "/api/bids",
		strings.NewReader(`{"game_id":"`+game.ID.String()+`","description":"the factory must grow further"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)
	require.Equal(t, 201, w.Code)

	var created schemas.BidRead
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	env.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/bids/"+created.ID.String(), nil))
	require.Equal(t, 200, w.Code)

	w = httptest.NewRecorder()
	env.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/bids/00000000-0000-0000-0000-000000000001", nil))
	assert.Equal(t, 404, w.Code)
}
