package rest

import (
	"context"
	"net/http"

	"github.com/gamemate/gamemate/internal/models"
)

// Context is the per-request state handed to every handler: the raw request,
// the resolved principal (for authenticated routes) and the validated body
// (for routes with a registered body prototype). It is owned by the request
// scope and never outlives it.
type Context struct {
	Request   *http.Request
	Principal *models.User

	body any
}

// Context returns the request's context.Context.
func (c *Context) Context() context.Context {
	return c.Request.Context()
}

// Body returns the validated request body, or nil when the route declares
// none. Handlers type-assert it to their registered prototype.
func (c *Context) Body() any {
	return c.body
}

// Param returns the value of a path placeholder.
func (c *Context) Param(name string) string {
	return c.Request.PathValue(name)
}

// Query returns the value of a query parameter, empty when absent.
func (c *Context) Query(name string) string {
	return c.Request.URL.Query().Get(name)
}

// HasQuery reports whether a query parameter is present at all, so handlers
// can distinguish "absent" from "empty".
func (c *Context) HasQuery(name string) bool {
	return c.Request.URL.Query().Has(name)
}
