package rest

// StatusSchema pairs an HTTP status code with the response schema prototype
// documented for it.
type StatusSchema struct {
	Status int
	Schema any
}

// R is shorthand for building a StatusSchema.
func R(status int, schema any) StatusSchema {
	return StatusSchema{Status: status, Schema: schema}
}

// Meta is the per-route documentation record, written once at registration.
// The request-body schema is not part of Meta; the route's Body prototype is
// the single source for both validation and documentation.
type Meta struct {
	Description string
	Responses   []StatusSchema
	QueryParams []string
}
