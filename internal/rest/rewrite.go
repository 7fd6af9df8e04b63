package rest

import "regexp"

// placeholderPattern matches internal path placeholders of the form
// <name> or <type:name>. The type annotation is advisory and discarded on
// rewrite; every path parameter is a string on the wire.
var placeholderPattern = regexp.MustCompile(`<(?:[a-zA-Z_][a-zA-Z0-9_]*:)?([a-zA-Z_][a-zA-Z0-9_]*)>`)

// RewritePath converts the internal placeholder syntax into the public
// {name} form, e.g. /api/bids/<int:bid_id> -> /api/bids/{bid_id}. The same
// form is used for ServeMux patterns and for the generated API description.
func RewritePath(path string) string {
	return placeholderPattern.ReplaceAllString(path, "{$1}")
}

// PathParams returns the placeholder names of a path, in order of
// appearance.
func PathParams(path string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}
