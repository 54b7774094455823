package secret

import (
	"crypto/rand"
	"encoding/base64"
)

// MustNew generates a new cryptographically secure byte array of length len and returns its
// base64 representation. It is used to bootstrap the token signing secret when no static one
// is configured.
func MustNew(len int) string {
	bytes := make([]byte, len)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(bytes)
}
