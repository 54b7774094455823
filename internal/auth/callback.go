package auth

import (
	"net/url"
	"time"

	"github.com/quantashield/console/internal/session"
)

// ResolveCallback consumes the query parameters of an inbound redirect from the auth
// gateway and either materializes a session or reports the terminal failure.
//
// The decision is a single pass with no retries: a provider-reported error short-circuits
// everything else, a missing token is terminal, and the token itself has to survive
// ParseToken's structural checks. A session is only ever constructed on the success path.
// The function is pure; persisting the session and notifying the application are the
// caller's concern.
func ResolveCallback(params url.Values, now time.Time) (*session.Session, error) {
	if errID := params.Get("error"); errID != "" {
		message := params.Get("error_description")
		if message == "" {
			message = errID
		}
		return nil, newError(CodeProviderRejected, message)
	}

	token := params.Get("token")
	if token == "" {
		return nil, newError(CodeMissingToken, "no token received")
	}

	claims, err := ParseToken(token, now)
	if err != nil {
		return nil, err
	}

	return &session.Session{
		Username: claims.Username,
		Email:    claims.Email,
		Provider: claims.Provider,
		Token:    token,
	}, nil
}
