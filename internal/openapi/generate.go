package openapi

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gamemate/gamemate/internal/models"
	"github.com/gamemate/gamemate/internal/rest"
)

const jsonContentType = "application/json"

// Generate walks the route table and produces the aggregate document.
// Routes without metadata are skipped entirely: an undocumented route does
// not appear in the description. Response and request-body schemas are
// registered once per type name in the shared components table and
// referenced from each operation.
func Generate(routes []rest.Route, title, version string) *Document {
	paths := map[string]PathItem{}
	schemas := map[string]*Schema{}

	for _, rt := range routes {
		if rt.Meta == nil {
			continue
		}

		public := rest.RewritePath(rt.Path)
		item, ok := paths[public]
		if !ok {
			item = PathItem{}
			paths[public] = item
		}

		op := Operation{
			Description: rt.Meta.Description,
			Responses:   map[string]Response{},
		}

		for _, rs := range rt.Meta.Responses {
			ref, name := refSchema(rs.Schema, schemas)
			op.Responses[strconv.Itoa(rs.Status)] = Response{
				Description: "Response with " + name,
				Content:     map[string]MediaType{jsonContentType: {Schema: ref}},
			}
		}

		if rt.Body != nil {
			ref, _ := refSchema(rt.Body(), schemas)
			op.RequestBody = &RequestBody{
				Required: true,
				Content:  map[string]MediaType{jsonContentType: {Schema: ref}},
			}
		}

		for _, name := range rest.PathParams(rt.Path) {
			op.Parameters = append(op.Parameters, Parameter{
				Name:     name,
				In:       "path",
				Required: true,
				Schema:   &Schema{Type: "string"},
			})
		}
		for _, name := range rt.Meta.QueryParams {
			op.Parameters = append(op.Parameters, Parameter{
				Name:   name,
				In:     "query",
				Schema: &Schema{Type: "string"},
			})
		}

		item[strings.ToLower(rt.Method)] = op
	}

	doc := &Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: title, Version: version},
		Paths:   paths,
		Components: &Components{
			SecuritySchemes: map[string]SecurityScheme{
				"jwt_scheme": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
			},
		},
		Security: []map[string][]string{{"jwt_scheme": {}}},
	}
	if len(schemas) > 0 {
		doc.Components.Schemas = schemas
	}
	return doc
}

// refSchema registers the prototype's type in the components table (once per
// type name) and returns a $ref to it along with the name.
func refSchema(proto any, schemas map[string]*Schema) (*Schema, string) {
	t := reflect.TypeOf(proto)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if _, ok := schemas[name]; !ok {
		// placeholder first, so self-referential types terminate
		schemas[name] = &Schema{}
		*schemas[name] = *structSchema(t, schemas)
	}
	return &Schema{Ref: "#/components/schemas/" + name}, name
}

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
	dateType = reflect.TypeOf(models.Date{})
)

func structSchema(t reflect.Type, schemas map[string]*Schema) *Schema {
	out := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		optional := strings.Contains(opts, "omitempty") || f.Type.Kind() == reflect.Pointer

		out.Properties[name] = fieldSchema(f.Type, schemas)
		if !optional {
			out.Required = append(out.Required, name)
		}
	}
	return out
}

func fieldSchema(t reflect.Type, schemas map[string]*Schema) *Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t {
	case uuidType:
		return &Schema{Type: "string", Format: "uuid"}
	case timeType:
		return &Schema{Type: "string", Format: "date-time"}
	case dateType:
		return &Schema{Type: "string", Format: "date"}
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: fieldSchema(t.Elem(), schemas)}
	case reflect.Struct:
		ref, _ := refSchema(reflect.New(t).Elem().Interface(), schemas)
		return ref
	case reflect.Map:
		return &Schema{Type: "object"}
	default:
		return &Schema{}
	}
}
