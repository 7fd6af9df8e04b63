package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewritePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/bids/<int:bid_id>", "/api/bids/{bid_id}"},
		{"/api/users/<id>", "/api/users/{id}"},
		{"/api/lobbies/<lobby_id>/join", "/api/lobbies/{lobby_id}/join"},
		{"/api/games", "/api/games"},
		{"/api/<uuid:a>/<b>", "/api/{a}/{b}"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RewritePath(tc.in), "rewrite of %s", tc.in)
	}
}

func TestPathParams(t *testing.T) {
	assert.Equal(t, []string{"lobby_id"}, PathParams("/api/lobbies/<lobby_id>/join"))
	assert.Equal(t, []string{"a", "b"}, PathParams("/api/<uuid:a>/<b>"))
	assert.Nil(t, PathParams("/api/games"))
}
