package rest

import (
	"encoding/json"
	"net/http"
	"reflect"
)

// Response is a handler's normalized return value: a value to serialize and
// an optional status code. Raw responses bypass serialization entirely.
type Response struct {
	Status int
	Value  any

	raw         []byte
	contentType string
}

// JSON wraps a value for serialization with the default 200 status.
func JSON(v any) *Response {
	return &Response{Value: v}
}

// Status wraps a value for serialization with an explicit status code.
func Status(v any, code int) *Response {
	return &Response{Value: v, Status: code}
}

// Raw builds a pre-serialized response that the normalizer passes through
// unchanged.
func Raw(body []byte, contentType string, code int) *Response {
	return &Response{Status: code, raw: body, contentType: contentType}
}

// writeResponse normalizes and writes a handler response:
//   - nil response or nil value        -> "{}"
//   - raw response                     -> passed through unchanged
//   - struct or map value              -> serialized as JSON
//   - anything else                    -> "{}" (documented fallback)
//
// The status defaults to 200 when unset. Every non-raw response goes out
// with Content-Type: application/json and a well-formed JSON body.
func writeResponse(w http.ResponseWriter, resp *Response) error {
	if resp != nil && resp.raw != nil {
		ct := resp.contentType
		if ct == "" {
			ct = "application/json"
		}
		w.Header().Set("Content-Type", ct)
		w.WriteHeader(statusOr200(resp.Status))
		_, err := w.Write(resp.raw)
		return err
	}

	status := http.StatusOK
	var value any
	if resp != nil {
		status = statusOr200(resp.Status)
		value = resp.Value
	}

	body := []byte("{}")
	if serializable(value) {
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		body = data
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

func statusOr200(code int) int {
	if code == 0 {
		return http.StatusOK
	}
	return code
}

// serializable reports whether the value is a struct or a map (directly or
// behind pointers). Everything else falls back to the empty object.
func serializable(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct || t.Kind() == reflect.Map
}
