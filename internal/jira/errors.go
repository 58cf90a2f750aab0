package jira

import "errors"

// ErrUnavailable means the gateway subprocess is not running or never
// initialized. Callers surface it to the user; nobody retries it here.
var ErrUnavailable = errors.New("jira: gateway not connected")

// GatewayError carries an explicit error payload returned by the backend.
// It is propagated verbatim — the original message text matters to the
// user and the core never guesses defaults around it.
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	return "jira: gateway error: " + e.Message
}

// IsGatewayError reports whether err is a backend error payload and
// returns the original message when it is.
func IsGatewayError(err error) (string, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Message, true
	}
	return "", false
}
