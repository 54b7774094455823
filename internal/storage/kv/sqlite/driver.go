package sqlite

import (
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"

	"github.com/quantashield/console/internal/storage/kv"
)

// Driver represents the SQLite-backed key-value storage driver.
// It persists the console's durable entries (bearer token, user info) across restarts.
type Driver struct {
	path string
	db   *sql.DB
}

var _ kv.Driver = (*Driver)(nil)

// New creates a new SQLite key-value storage driver operating on the given database file
func New(path string) *Driver {
	return &Driver{
		path: path,
	}
}

// Initialize opens the database file and creates the kv table if it does not exist yet
func (driver *Driver) Initialize() error {
	db, err := sql.Open("sqlite", driver.path)
	if err != nil {
		return err
	}
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)"); err != nil {
		db.Close()
		return err
	}
	driver.db = db
	return nil
}

// Get retrieves the value assigned to the given key
func (driver *Driver) Get(key string) (string, error) {
	var value string
	err := driver.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set assigns a value to the given key, replacing any existing one
func (driver *Driver) Set(key, value string) error {
	_, err := driver.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// Delete removes the given key
func (driver *Driver) Delete(key string) error {
	_, err := driver.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

// Close closes the underlying database connection
func (driver *Driver) Close() error {
	if driver.db == nil {
		return nil
	}
	return driver.db.Close()
}
