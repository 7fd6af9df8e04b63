// Package handlers implements the HTTP surface on top of the rest pipeline.
// Each handler group is a struct closed over its collaborators, declared as
// small interfaces so tests can substitute in-memory fakes.
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/auth"
	"github.com/gamemate/gamemate/internal/database"
	"github.com/gamemate/gamemate/internal/httperr"
	"github.com/gamemate/gamemate/internal/models"
	"github.com/gamemate/gamemate/internal/rest"
	"github.com/gamemate/gamemate/internal/schemas"
)

// UserStore is the persistence collaborator for users.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer mints bearer tokens for authenticated principals.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Users serves the /api/users endpoints.
type Users struct {
	Store  UserStore
	Tokens TokenIssuer
}

// Signup registers a user and returns a fresh token with the echoed profile.
func (h *Users) Signup(c *rest.Context) (*rest.Response, error) {
	in := c.Body().(*schemas.UserSignup)

	user := models.User{
		Username:        in.Username,
		Password:        in.Password,
		Gender:          in.Gender,
		Bio:             in.Bio,
		Avatar:          in.Avatar,
		TelegramContact: in.TelegramContact,
		DiscordContact:  in.DiscordContact,
		SteamContact:    in.SteamContact,
	}

	if err := h.Store.Create(c.Context(), &user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, httperr.Conflict("User with this username already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := h.Tokens.Issue(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return rest.Status(schemas.AuthResponse{
		Token: token,
		User:  schemas.ProfileFrom(&user),
	}, http.StatusCreated), nil
}

// Login exchanges valid credentials for a token.
func (h *Users) Login(c *rest.Context) (*rest.Response, error) {
	in := c.Body().(*schemas.UserLogin)

	user, err := h.Store.FindByUsername(c.Context(), in.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, httperr.Unauthorized("Username or password incorrect")
	}

	match, err := auth.VerifyPassword(in.Password, user.Password)
	if err != nil || !match {
		return nil, httperr.Unauthorized("Username or password incorrect")
	}

	token, err := h.Tokens.Issue(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return rest.JSON(schemas.TokenResponse{Token: token}), nil
}

// Get returns a user's public profile by id.
func (h *Users) Get(c *rest.Context) (*rest.Response, error) {
	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		return nil, httperr.NotFound("user not found")
	}

	user, err := h.Store.FindByID(c.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, httperr.NotFound("user not found")
	}
	return rest.JSON(schemas.ProfileFrom(user)), nil
}

// Profile returns the authenticated principal's own profile.
func (h *Users) Profile(c *rest.Context) (*rest.Response, error) {
	return rest.JSON(schemas.ProfileFrom(c.Principal)), nil
}
