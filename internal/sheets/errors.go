package sheets

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse indicates a 2xx response whose body could not be
// read as a values payload.
var ErrMalformedResponse = errors.New("malformed sheets response")

// APIError is a non-2xx answer from the Sheets API.
type APIError struct {
	StatusCode int
	Status     string // e.g. PERMISSION_DENIED
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("sheets api %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("sheets api %d: %s", e.StatusCode, e.Message)
}
