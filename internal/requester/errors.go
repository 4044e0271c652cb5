package requester

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

const maxErrorBody = 200

// StatusError is returned when a response status is outside the accepted set.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Expected   []int
	Body       string

	raw []byte
}

func newStatusError(method, url string, status int, expected []int, body []byte) *StatusError {
	truncated := []rune(string(body))
	if len(truncated) > maxErrorBody {
		truncated = truncated[:maxErrorBody]
	}

	return &StatusError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Expected:   expected,
		Body:       string(truncated),
		raw:        body,
	}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Unexpected status code: %d. Expected: %v. Response: %s", e.StatusCode, e.Expected, e.Body)
}

// JSON decodes the full, untruncated response body.
func (e *StatusError) JSON(v any) error {
	return json.Unmarshal(e.raw, v)
}

// IsStatus reports whether err is a *StatusError carrying one of codes.
func IsStatus(err error, codes ...int) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}

	return slices.Contains(codes, se.StatusCode)
}
