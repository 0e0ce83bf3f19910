// Package sqlite opens SQLite databases through either the pure Go
// modernc.org/sqlite driver or the CGO mattn/go-sqlite3 driver.
//
// Build modes:
//   - Default (CGO_ENABLED=0): modernc.org/sqlite, driver name "sqlite"
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3, driver name "sqlite3"
//
// The two drivers spell connection parameters differently, so always open
// databases through Open.
package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"github.com/FocuswithJustin/JuniperGloss/core/errors"
)

// DefaultBusyTimeout is how long a connection waits on a locked database.
const DefaultBusyTimeout = 5 * time.Second

// DriverName returns the SQL driver name in use.
func DriverName() string {
	return driverName
}

// DriverType returns "cgo" for mattn/go-sqlite3 and "purego" for modernc.org/sqlite.
func DriverType() string {
	return driverType
}

// Option adjusts how Open connects.
type Option func(*config)

type config struct {
	readOnly    bool
	busyTimeout time.Duration
}

// ReadOnly opens the database without write access. The file must exist.
func ReadOnly() Option {
	return func(c *config) { c.readOnly = true }
}

// BusyTimeout sets how long to wait on a locked database.
func BusyTimeout(d time.Duration) Option {
	return func(c *config) { c.busyTimeout = d }
}

// Open opens the SQLite database file at path.
func Open(path string, opts ...Option) (*sql.DB, error) {
	if path == "" {
		return nil, errors.NewValidation("path", "database path is required")
	}
	cfg := config{busyTimeout: DefaultBusyTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	dsn := DSN(path, cfg.readOnly, cfg.busyTimeout)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.NewIO("open database", path, err)
	}
	// one connection keeps a transaction and the reads after it on the same handle
	db.SetMaxOpenConns(1)
	return db, nil
}

// OpenReadOnly is Open with ReadOnly.
func OpenReadOnly(path string) (*sql.DB, error) {
	return Open(path, ReadOnly())
}

// DSN builds a file: URI for path in the current driver's dialect.
func DSN(path string, readOnly bool, busyTimeout time.Duration) string {
	params := []string{busyTimeoutParam(busyTimeout.Milliseconds())}
	if readOnly {
		params = append(params, "mode=ro")
	}
	return "file:" + escapePath(path) + "?" + strings.Join(params, "&")
}

var pathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// escapePath percent-encodes the characters that end the path part of a URI.
func escapePath(path string) string {
	return pathEscaper.Replace(path)
}
