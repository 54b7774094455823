package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quantashield/console/internal/random"
)

// LocalProvider marks sessions established through the local credential + second factor
// flow rather than a federated hand-off
const LocalProvider = "local"

var tokenIDLength = 16

// Issuer signs bearer tokens for logins completed against the local credential backend.
// Unlike inbound federated tokens (whose signature is the gateway's business), locally
// issued tokens are HS256-signed because the signing secret lives in this process anyway.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
}

// NewIssuer creates a new token issuer using the given signing secret and token lifetime
func NewIssuer(secret []byte, lifetime time.Duration) *Issuer {
	return &Issuer{
		secret:   secret,
		lifetime: lifetime,
	}
}

// Issue creates a signed bearer token carrying the given identity
func (issuer *Issuer) Issue(username, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"email":    email,
		"provider": LocalProvider,
		"iat":      now.Unix(),
		"exp":      now.Add(issuer.lifetime).Unix(),
		"jti":      random.String(tokenIDLength, random.CharsetAlphanumeric),
	})
	return token.SignedString(issuer.secret)
}
