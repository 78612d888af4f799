package govtapi

import (
	"errors"
	"fmt"
)

// ErrCredentialsMissing is returned when the API key or secret is not
// configured. The check happens before any upstream call is attempted.
var ErrCredentialsMissing = errors.New("government API credentials not configured")

// AuthError reports a rejected or malformed authentication exchange with the
// government API. It carries the upstream status and body for diagnostics.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("government API authentication failed: %s", e.Body)
	}
	return fmt.Sprintf("government API authentication failed: status %d: %s", e.StatusCode, e.Body)
}
