package session

import (
	"encoding/json"
	"sync"

	"github.com/quantashield/console/internal/storage/kv"
)

// The two durable entries backing the current session.
// They are always written and wiped together.
const (
	keyToken = "auth_token"
	keyInfo  = "user_info"
)

// Store is the process-wide holder of the current session.
// Set and Clear are atomic with respect to readers: Get observes either the fully-old or
// the fully-new state, never a partial session. The durable entries are written before
// the new session becomes visible, so a restart in between cannot lose it.
type Store struct {
	mtx         sync.RWMutex
	current     *Session
	persistence kv.Driver
}

// NewStore creates a new session store backed by the given durable key-value driver
func NewStore(persistence kv.Driver) *Store {
	return &Store{
		persistence: persistence,
	}
}

// Get returns the current session, or nil if no authenticated session exists
func (store *Store) Get() *Session {
	store.mtx.RLock()
	defer store.mtx.RUnlock()
	return store.current
}

// Set replaces the current session wholesale.
// The durable entries are persisted first; if persistence fails, the previous session
// stays in place untouched.
func (store *Store) Set(session *Session) error {
	info, err := json.Marshal(session.Info())
	if err != nil {
		return err
	}

	store.mtx.Lock()
	defer store.mtx.Unlock()
	if err := store.persistence.Set(keyToken, session.Token); err != nil {
		return err
	}
	if err := store.persistence.Set(keyInfo, string(info)); err != nil {
		return err
	}
	store.current = session
	return nil
}

// Clear removes the current session together with both of its durable entries.
// Clearing an already cleared store is a no-op.
func (store *Store) Clear() error {
	store.mtx.Lock()
	defer store.mtx.Unlock()
	if err := store.persistence.Delete(keyToken); err != nil {
		return err
	}
	if err := store.persistence.Delete(keyInfo); err != nil {
		return err
	}
	store.current = nil
	return nil
}

// Restore rebuilds the session out of the durable entries of a previous process, if any.
// The given validate function decides whether the persisted token is still acceptable
// (shape, expiry). If either entry is missing or validation fails, both entries are wiped
// and the store starts out unauthenticated.
func (store *Store) Restore(validate func(token string) error) (*Session, error) {
	store.mtx.Lock()
	defer store.mtx.Unlock()

	token, err := store.persistence.Get(keyToken)
	if err != nil {
		return nil, err
	}
	rawInfo, err := store.persistence.Get(keyInfo)
	if err != nil {
		return nil, err
	}

	if token == "" || rawInfo == "" {
		return nil, store.wipe()
	}

	info := new(Info)
	if err := json.Unmarshal([]byte(rawInfo), info); err != nil {
		return nil, store.wipe()
	}
	if err := validate(token); err != nil {
		return nil, store.wipe()
	}

	store.current = &Session{
		Username: info.Username,
		Email:    info.Email,
		Provider: info.Provider,
		Token:    token,
	}
	return store.current, nil
}

func (store *Store) wipe() error {
	if err := store.persistence.Delete(keyToken); err != nil {
		return err
	}
	return store.persistence.Delete(keyInfo)
}
