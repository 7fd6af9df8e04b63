package handlers

import (
	"github.com/gamemate/gamemate/internal/rest"
	"github.com/gamemate/gamemate/internal/schemas"
)

// RegisterRoutes installs the full HTTP surface on the API's route table.
// This is the single place where cross-cutting behavior is declared: the
// body prototype, the auth requirement and the documentation metadata of
// every route.
func RegisterRoutes(api *rest.API, users *Users, games *Games, bids *Bids, lobbies *Lobbies) {
	// users
	api.Register(rest.Route{
		Method:  "POST",
		Path:    "/api/users/signup",
		Handler: users.Signup,
		Body:    func() any { return new(schemas.UserSignup) },
		Meta: &rest.Meta{
			Description: "Register a user and return a token with the echoed profile",
			Responses:   []rest.StatusSchema{rest.R(201, schemas.AuthResponse{})},
		},
	})
	api.Register(rest.Route{
		Method:  "POST",
		Path:    "/api/users/login",
		Handler: users.Login,
		Body:    func() any { return new(schemas.UserLogin) },
		Meta: &rest.Meta{
			Description: "Exchange username and password for a token",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.TokenResponse{})},
		},
	})
	api.Register(rest.Route{
		Method:  "GET",
		Path:    "/api/users/profile",
		Handler: users.Profile,
		Auth:    true,
		Meta: &rest.Meta{
			Description: "Return the authenticated user's own profile",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.UserProfile{})},
		},
	})
	api.Register(rest.Route{
		Method:  "GET",
		Path:    "/api/users/<user_id>",
		Handler: users.Get,
		Meta: &rest.Meta{
			Description: "Return a user's public profile",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.UserProfile{})},
		},
	})

	// games
	api.Register(rest.Route{
		Method:  "GET",
		Path:    "/api/games",
		Handler: games.List,
		Meta: &rest.Meta{
			Description: "List all games",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.GameList{})},
		},
	})
	api.Register(rest.Route{
		Method:  "POST",
		Path:    "/api/games",
		Handler: games.Create,
		Body:    func() any { return new(schemas.GameWrite) },
		Auth:    true,
		Meta: &rest.Meta{
			Description: "Create a game",
			Responses:   []rest.StatusSchema{rest.R(201, schemas.GameRead{})},
		},
	})

	// bids
	api.Register(rest.Route{
		Method:  "GET",
		Path:    "/api/bids",
		Handler: bids.List,
		Meta: &rest.Meta{
			Description: "List bids, filtered by description substring and game name",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.BidList{})},
			QueryParams: []string{"description_search", "game_search"},
		},
	})
	api.Register(rest.Route{
		Method:  "POST",
		Path:    "/api/bids",
		Handler: bids.Create,
		Body:    func() any { return new(schemas.BidWrite) },
		Auth:    true,
		Meta: &rest.Meta{
			Description: "Create a bid authored by the authenticated user",
			Responses:   []rest.StatusSchema{rest.R(201, schemas.BidRead{})},
		},
	})
	api.Register(rest.Route{
		Method:  "GET",
		Path:    "/api/bids/<bid_id>",
		Handler: bids.Get,
		Meta: &rest.Meta{
			Description: "Return a single bid",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.BidRead{})},
		},
	})

	// lobbies
	api.Register(rest.Route{
		Method:  "POST",
		Path:    "/api/lobbies/",
		Handler: lobbies.Create,
		Body:    func() any { return new(schemas.LobbyWrite) },
		Auth:    true,
		Meta: &rest.Meta{
			Description: "Create a lobby with the authenticated user as author and first member",
			Responses:   []rest.StatusSchema{rest.R(201, schemas.LobbyRead{})},
		},
	})
	api.Register(rest.Route{
		Method:  "GET",
		Path:    "/api/lobbies/",
		Handler: lobbies.List,
		Meta: &rest.Meta{
			Description: "List lobbies with optional platform, game, skill range and open-slot filters",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.LobbyList{})},
			QueryParams: []string{"platform", "search_game", "min_skill", "max_skill", "open_slots"},
		},
	})
	api.Register(rest.Route{
		Method:  "GET",
		Path:    "/api/lobbies/<lobby_id>",
		Handler: lobbies.Get,
		Meta: &rest.Meta{
			Description: "Return a lobby with its member list",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.LobbyRead{})},
		},
	})
	api.Register(rest.Route{
		Method:  "PATCH",
		Path:    "/api/lobbies/<lobby_id>/join",
		Handler: lobbies.Join,
		Auth:    true,
		Meta: &rest.Meta{
			Description: "Join a lobby; joining twice is a no-op",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.LobbyRead{})},
		},
	})
	api.Register(rest.Route{
		Method:  "DELETE",
		Path:    "/api/lobbies/<lobby_id>/leave",
		Handler: lobbies.Leave,
		Auth:    true,
		Meta: &rest.Meta{
			Description: "Leave a lobby; when the author leaves, the lobby is deleted",
			Responses:   []rest.StatusSchema{rest.R(200, schemas.LobbyLeaveResponse{})},
		},
	})
}
