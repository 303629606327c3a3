package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidFilter marks filters rejected locally, before any request is issued.
var ErrInvalidFilter = errors.New("invalid filter")

// StatusError is a non-2xx backend response. Fields carries the backend's
// structured validation payload when the body provides one.
type StatusError struct {
	Method   string
	Endpoint string
	Code     int
	Fields   map[string][]string
	Body     string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: backend returned %d", e.Method, e.Endpoint, e.Code)
	if len(e.Fields) > 0 {
		var parts []string
		for field, issues := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(issues, "; ")))
		}
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	return msg
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// IsValidation reports whether err is a backend rejection with field detail.
func IsValidation(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusBadRequest && len(se.Fields) > 0
}

// newStatusError decodes the error body. Field values arrive either as a
// list of messages or as a single string; both forms are normalized.
func newStatusError(method, endpoint string, code int, body []byte) *StatusError {
	se := &StatusError{
		Method:   method,
		Endpoint: endpoint,
		Code:     code,
		Body:     string(body),
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return se
	}

	fields := make(map[string][]string)
	for key, raw := range payload {
		switch v := raw.(type) {
		case string:
			fields[key] = []string{v}
		case []any:
			var issues []string
			for _, item := range v {
				if s, ok := item.(string); ok {
					issues = append(issues, s)
				}
			}
			if len(issues) > 0 {
				fields[key] = issues
			}
		}
	}
	if len(fields) > 0 {
		se.Fields = fields
	}
	return se
}
