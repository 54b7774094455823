package auth

// Code classifies a terminal authentication failure.
// Every failure is terminal for the attempt it belongs to; nothing is retried automatically.
type Code string

const (
	// CodeInvalidCredentials is raised when the primary username/password pair is rejected
	CodeInvalidCredentials Code = "invalid_credentials"
	// CodeInvalidSecondFactor is raised when the second factor code is rejected or malformed
	CodeInvalidSecondFactor Code = "invalid_second_factor"
	// CodeUnknownAttempt is raised when a second factor is submitted for an unknown or expired login attempt
	CodeUnknownAttempt Code = "unknown_attempt"
	// CodeUnknownProvider is raised when a federated login names a provider outside the configured set
	CodeUnknownProvider Code = "unknown_provider"
	// CodeProviderUnavailable is raised when the auth gateway reachability probe fails
	CodeProviderUnavailable Code = "provider_unavailable"
	// CodeProviderRejected is raised when the inbound callback carries a provider error
	CodeProviderRejected Code = "provider_rejected"
	// CodeMissingToken is raised when the inbound callback carries neither a token nor an error
	CodeMissingToken Code = "missing_token"
	// CodeMalformedToken is raised when the token fails structural validation
	CodeMalformedToken Code = "malformed_token"
	// CodeExpiredToken is raised when the token payload carries an expiry in the past
	CodeExpiredToken Code = "expired_token"
	// CodeIncompleteUserInfo is raised when the token payload misses required identity fields
	CodeIncompleteUserInfo Code = "incomplete_user_info"
)

// Error represents a typed, user-visible authentication failure
type Error struct {
	Code    Code
	Message string
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return err.Message
}

func newError(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// CodeOf extracts the failure code out of an error.
// It returns an empty code for nil errors and errors raised outside this package.
func CodeOf(err error) Code {
	if typed, ok := err.(*Error); ok {
		return typed.Code
	}
	return ""
}
