package session

// Session represents the authenticated identity for the current process lifetime.
// Its mere existence implies authentication: consumers treat a nil session as "not logged
// in" and never inspect a dedicated flag. A session is immutable once constructed;
// replacing it means discarding the old one wholesale.
type Session struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Provider string `json:"provider"`

	// Token is the original signed bearer credential. It is retained verbatim for
	// presentation on subsequent requests and never re-parsed after the session exists.
	Token string `json:"-"`
}

// Info is the serializable projection of a session that is persisted to durable storage
// alongside the raw bearer token
type Info struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

// Info returns the persistable projection of the session
func (session *Session) Info() *Info {
	return &Info{
		Username: session.Username,
		Email:    session.Email,
		Provider: session.Provider,
	}
}
