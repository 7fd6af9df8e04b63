// Package rest implements the request pipeline: an explicit route table with
// per-route body validation, bearer-token identity resolution, uniform error
// translation and response normalization. Cross-cutting behavior is declared
// at registration time, never inferred from handler signatures.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gamemate/gamemate/internal/httperr"
	"github.com/gamemate/gamemate/internal/models"
)

// HandlerFunc is the signature of every route handler.
type HandlerFunc func(*Context) (*Response, error)

// PrincipalLookup loads the principal referenced by a verified token
// subject. A (nil, nil) return means the principal no longer exists.
type PrincipalLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenVerifier checks a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Route is one entry of the registration table. Path uses the internal
// placeholder syntax (<name> or <type:name>). Body, when non-nil, constructs
// the request-body prototype that is decoded, validated and injected into
// the handler context. Auth routes resolve the principal before anything
// else touches the body.
type Route struct {
	Method  string
	Path    string
	Handler HandlerFunc

	Body func() any
	Auth bool
	Meta *Meta
}

// API owns the route table and the collaborators shared by the pipeline.
type API struct {
	logger     *logrus.Logger
	tokens     TokenVerifier
	principals PrincipalLookup
	validate   *validator.Validate
	routes     []Route
}

// New builds an API around the given collaborators.
func New(logger *logrus.Logger, tokens TokenVerifier, principals PrincipalLookup) *API {
	return &API{
		logger:     logger,
		tokens:     tokens,
		principals: principals,
		validate:   newValidator(),
	}
}

// Register appends a route to the table. Must be called before Mount;
// the table is read-only once the server starts.
func (a *API) Register(r Route) {
	a.routes = append(a.routes, r)
}

// Routes returns the registered route table, in registration order.
func (a *API) Routes() []Route {
	return a.routes
}

// Mount installs every registered route on the mux using method-qualified
// patterns with rewritten placeholders.
func (a *API) Mount(mux *http.ServeMux) {
	for _, rt := range a.routes {
		pattern := rt.Method + " " + RewritePath(rt.Path)
		mux.Handle(pattern, a.wrap(rt))
	}
}

// wrap is the pipeline boundary. It runs the chain (identity resolution,
// body validation, handler, response normalization) and translates typed
// HTTP errors into the {"detail": ...} envelope exactly once. Any other
// error is a server fault: logged and answered with a bare 500, never
// dressed up as a client error.
func (a *API) wrap(rt Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, err := a.dispatch(rt, r)
		if err != nil {
			var he *httperr.Error
			if errors.As(err, &he) {
				writeError(w, he)
				return
			}
			a.logger.WithFields(logrus.Fields{
				"method": rt.Method,
				"path":   rt.Path,
			}).WithError(err).Error("unhandled error")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if werr := writeResponse(w, resp); werr != nil {
			a.logger.WithError(werr).Error("failed to write response")
		}
	})
}

// dispatch runs the per-request chain in its fixed order: auth first, then
// body validation, then the handler. Auth failures must never leak
// validation details, so an unauthenticated request never reaches decoding.
func (a *API) dispatch(rt Route, r *http.Request) (*Response, error) {
	c := &Context{Request: r}

	if rt.Auth {
		principal, err := a.resolvePrincipal(r)
		if err != nil {
			return nil, err
		}
		c.Principal = principal
	}

	if rt.Body != nil {
		body := rt.Body()
		if err := a.decodeBody(r, body); err != nil {
			return nil, err
		}
		c.body = body
	}

	return rt.Handler(c)
}

// resolvePrincipal extracts the bearer token from the Authorization header,
// verifies it and loads the referenced principal.
func (a *API) resolvePrincipal(r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, httperr.Unauthorized("missing or malformed Authorization header")
	}

	subject, err := a.tokens.Verify(token)
	if err != nil {
		return nil, httperr.Unauthorized("invalid or expired token")
	}

	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, httperr.Unauthorized("invalid or expired token")
	}

	principal, err := a.principals.FindByID(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("principal lookup: %w", err)
	}
	if principal == nil {
		return nil, httperr.Unauthorized("user for this token no longer exists")
	}
	return principal, nil
}

// decodeBody parses the request body into the route's prototype and runs
// the schema constraints against it. A wrongly-typed field in otherwise
// valid JSON is a field-level validation failure, not a parse error.
func (a *API) decodeBody(r *http.Request, body any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return httperr.MalformedRequest("JSON parse error, data is not valid JSON")
	}
	if err := json.Unmarshal(data, body); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return httperr.Validation([]httperr.FieldError{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("must be of type %s", typeErr.Type),
			}})
		}
		return httperr.MalformedRequest("JSON parse error, data is not valid JSON")
	}
	if err := a.validate.Struct(body); err != nil {
		return validationError(err)
	}
	return nil
}

func writeError(w http.ResponseWriter, he *httperr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{"detail": he.Detail})
}
