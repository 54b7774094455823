package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"github.com/quantashield/console/internal/hashmap"
	"github.com/quantashield/console/internal/session"
)

// State represents the position of a login attempt within the local login state machine
type State uint8

const (
	// StateCredentials awaits the primary username/password pair
	StateCredentials State = iota
	// StateTwoFactorPending awaits the second factor code
	StateTwoFactorPending
	// StateAuthenticated is the terminal success state
	StateAuthenticated
)

// String returns the wire representation of the state
func (state State) String() string {
	switch state {
	case StateCredentials:
		return "credentials"
	case StateTwoFactorPending:
		return "two_factor_pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Profile carries the account data the credential backend returns for a verified user
type Profile struct {
	Username string
	Email    string
}

// CredentialVerifier abstracts the backend that checks primary credentials and second
// factors. Both operations may involve network latency and honor context cancellation.
type CredentialVerifier interface {
	// VerifyCredentials checks a username/password pair.
	// It returns (nil, nil) for a clean rejection.
	VerifyCredentials(ctx context.Context, username, password string) (*Profile, error)

	// VerifySecondFactor checks a second factor code for the given username
	VerifySecondFactor(ctx context.Context, username, code string) (bool, error)
}

// Attempt represents a single in-flight login attempt.
// Attempts that accepted credentials but never completed the second factor expire after
// the flow's attempt lifetime.
type Attempt struct {
	ID      string
	Profile *Profile
	State   State
	Started time.Time
}

var cleanupTick = 30 * time.Second

// Flow drives the local login state machine:
// credentials -> two factor pending -> authenticated, with failures keeping the attempt
// in its current state for an explicit user retry. Federated logins never enter this
// machine; they resume at the callback handler instead.
type Flow struct {
	verifier CredentialVerifier
	issuer   *Issuer
	attempts *hashmap.ExpiringMap[string, *Attempt]
}

// NewFlow creates a new login flow holding unfinished attempts for the given lifetime
func NewFlow(verifier CredentialVerifier, issuer *Issuer, attemptLifetime time.Duration) *Flow {
	attempts := hashmap.NewExpiring[string, *Attempt](attemptLifetime)
	attempts.ScheduleCleanupTask(cleanupTick)
	return &Flow{
		verifier: verifier,
		issuer:   issuer,
		attempts: attempts,
	}
}

// Close stops the attempt cleanup task and discards all unfinished attempts
func (flow *Flow) Close() {
	flow.attempts.StopCleanupTask()
	flow.attempts.Clear()
}

// SubmitCredentials checks the primary username/password pair and, on success, opens a
// new attempt in the two-factor-pending state. A rejection yields InvalidCredentials and
// opens nothing; the user re-enters their credentials from scratch.
func (flow *Flow) SubmitCredentials(ctx context.Context, username, password string) (*Attempt, error) {
	profile, err := flow.verifier.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, newError(CodeInvalidCredentials, "invalid username or password")
	}

	attempt := &Attempt{
		ID:      uuid.NewString(),
		Profile: profile,
		State:   StateTwoFactorPending,
		Started: time.Now(),
	}
	flow.attempts.Set(attempt.ID, attempt)
	return attempt, nil
}

// SubmitSecondFactor checks the second factor code of a pending attempt and, on success,
// issues a signed bearer token and materializes the session. A rejected code yields
// InvalidSecondFactor and leaves the attempt in the two-factor-pending state.
func (flow *Flow) SubmitSecondFactor(ctx context.Context, attemptID, code string) (*session.Session, error) {
	attempt, ok := flow.attempts.Lookup(attemptID)
	if !ok || attempt.State != StateTwoFactorPending {
		return nil, newError(CodeUnknownAttempt, "unknown or expired login attempt")
	}

	if !isSecondFactorShape(code) {
		return nil, newError(CodeInvalidSecondFactor, "invalid 2FA code")
	}

	valid, err := flow.verifier.VerifySecondFactor(ctx, attempt.Profile.Username, code)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, newError(CodeInvalidSecondFactor, "invalid 2FA code")
	}

	token, err := flow.issuer.Issue(attempt.Profile.Username, attempt.Profile.Email)
	if err != nil {
		return nil, err
	}

	attempt.State = StateAuthenticated
	flow.attempts.Unset(attempt.ID)

	return &session.Session{
		Username: attempt.Profile.Username,
		Email:    attempt.Profile.Email,
		Provider: LocalProvider,
		Token:    token,
	}, nil
}

// isSecondFactorShape reports whether the code consists of exactly 6 ASCII digits
func isSecondFactorShape(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, char := range code {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

// StaticVerifier is the demo credential backend: a single account with a fixed second
// factor code. The optional latency imitates the network round trip of a real backend
// and honors context cancellation.
type StaticVerifier struct {
	Username     string
	Password     string
	Email        string
	SecondFactor string
	Latency      time.Duration
}

var _ CredentialVerifier = (*StaticVerifier)(nil)

// VerifyCredentials checks the pair against the single configured account
func (verifier *StaticVerifier) VerifyCredentials(ctx context.Context, username, password string) (*Profile, error) {
	if err := verifier.wait(ctx); err != nil {
		return nil, err
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(verifier.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(verifier.Password)) == 1
	if !userOK || !passOK {
		return nil, nil
	}
	return &Profile{
		Username: verifier.Username,
		Email:    verifier.Email,
	}, nil
}

// VerifySecondFactor checks the code against the configured one
func (verifier *StaticVerifier) VerifySecondFactor(ctx context.Context, _ string, code string) (bool, error) {
	if err := verifier.wait(ctx); err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(verifier.SecondFactor)) == 1, nil
}

func (verifier *StaticVerifier) wait(ctx context.Context) error {
	if verifier.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(verifier.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
