// Package openapi aggregates the registered route table into a single
// OpenAPI 3.0 document. Generation is pure: the same route table always
// yields byte-identical output.
package openapi

// Document is the root of the aggregate API description. Maps serialize
// with sorted keys under encoding/json, which is what keeps repeated
// generations byte-identical.
type Document struct {
	OpenAPI    string                `json:"openapi"`
	Info       Info                  `json:"info"`
	Paths      map[string]PathItem   `json:"paths"`
	Components *Components           `json:"components,omitempty"`
	Security   []map[string][]string `json:"security,omitempty"`
}

// Info describes the API itself.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// PathItem maps lower-case HTTP methods to their operations.
type PathItem map[string]Operation

// Operation documents one method of one path.
type Operation struct {
	Description string              `json:"description,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

// Parameter documents a path or query parameter.
type Parameter struct {
	Name     string  `json:"name"`
	In       string  `json:"in"`
	Required bool    `json:"required"`
	Schema   *Schema `json:"schema,omitempty"`
}

// RequestBody documents an expected JSON request body.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// MediaType wraps a schema for one content type.
type MediaType struct {
	Schema *Schema `json:"schema"`
}

// Response documents one status code of an operation.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// Schema is either an inline JSON schema or a $ref into the shared
// components table.
type Schema struct {
	Ref        string             `json:"$ref,omitempty"`
	Type       string             `json:"type,omitempty"`
	Format     string             `json:"format,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// Components holds the deduplicated schema table and security schemes.
type Components struct {
	Schemas         map[string]*Schema        `json:"schemas,omitempty"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes,omitempty"`
}

// SecurityScheme documents the bearer-JWT scheme.
type SecurityScheme struct {
	Type         string `json:"type"`
	Scheme       string `json:"scheme"`
	BearerFormat string `json:"bearerFormat,omitempty"`
}
