// Package sqlite is the SQLite relational driver: cursor-fetch execution
// model (spec.md §4.4), SERIALIZABLE-only isolation (SQLite has no tunable
// isolation levels; every transaction behaves as SERIALIZABLE — spec.md
// §4.3's "report the backend's actual default" note), wired to
// github.com/glebarez/go-sqlite, a cgo-free database/sql driver — grounded
// on the teacher's single *sql.DB-per-Core pattern in gdb_core.go.
package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/glebarez/go-sqlite"

	"cpp_dbc"
)

const scheme = "sqlite"

// Driver is the cpp_dbc.RelationalDriver for SQLite.
type Driver struct{}

// NewDriver returns a ready-to-register SQLite driver.
func NewDriver() *Driver { return &Driver{} }

func (Driver) Scheme() string                  { return scheme }
func (Driver) Name() string                    { return "SQLite" }
func (Driver) Accepts(u *cppdbc.ParsedURL) bool { return u.Scheme == scheme }

// Connect opens the file at u.Database (an absolute or relative filesystem
// path, per spec.md §4.1's sqlite URL grammar) through database/sql.
func (d Driver) Connect(ctx context.Context, u *cppdbc.ParsedURL, user, password string) (cppdbc.Connection, error) {
	db, err := sql.Open("sqlite", u.Database)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "opening sqlite database %s", u.Database)
	}
	// SQLite's driver serializes writers internally; a single open
	// connection avoids SQLITE_BUSY storms from concurrent *sql.DB
	// connections against the same file (grounded on glebarez/go-sqlite's
	// own documented recommendation).
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "opening sqlite database %s", u.Database)
	}
	base := cppdbc.NewBaseConnection(rawURL(u), cppdbc.Serializable, false)
	return &Connection{BaseConnection: base, db: db}, nil
}

func rawURL(u *cppdbc.ParsedURL) string {
	return "cpp_dbc:sqlite://" + u.Database
}
