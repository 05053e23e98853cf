// Package firebird is the Firebird relational driver: cursor-fetch
// execution model (spec.md §4.4) and the implicit-BEGIN-on-first-statement
// rule (spec.md §4.3/§9: when autocommit is off and no transaction is
// active, the first data statement silently starts one rather than
// requiring an explicit BeginTransaction call), wired to
// github.com/nakagami/firebirdsql — grounded on the teacher's Core/DB
// split in gdb_core.go and gdb_core_config.go for DSN assembly.
package firebird

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/nakagami/firebirdsql"

	"cpp_dbc"
)

const scheme = "firebird"

// Driver is the cpp_dbc.RelationalDriver for Firebird.
type Driver struct{}

// NewDriver returns a ready-to-register Firebird driver.
func NewDriver() *Driver { return &Driver{} }

func (Driver) Scheme() string                  { return scheme }
func (Driver) Name() string                    { return "Firebird" }
func (Driver) Accepts(u *cppdbc.ParsedURL) bool { return u.Scheme == scheme }

// Connect opens a Firebird connection. u.Database carries the full
// absolute path to the .fdb file (spec.md §4.1/§6's firebird URL example:
// "cpp_dbc:firebird://host:3050//var/lib/firebird/data/db.fdb").
func (d Driver) Connect(ctx context.Context, u *cppdbc.ParsedURL, user, password string) (cppdbc.Connection, error) {
	dsn := fmt.Sprintf("%s:%s@%s:%s%s", user, password, u.Host, u.PortOrDefault(), u.Database)
	db, err := sql.Open("firebirdsql", dsn)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "opening firebird connection")
	}
	// *sql.DB pools physical sockets; a cpp_dbc Connection is one session
	// (and Firebird's implicit-transaction rule in particular depends on
	// every statement landing on the same server-side session), so one
	// physical connection is pinned for its entire lifetime via db.Conn.
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "acquiring firebird connection")
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "connecting to firebird at %s:%s", u.Host, u.PortOrDefault())
	}
	base := cppdbc.NewBaseConnection(rawURL(u), cppdbc.ReadCommitted, false)
	return &Connection{BaseConnection: base, db: db, conn: conn}, nil
}

func rawURL(u *cppdbc.ParsedURL) string {
	return fmt.Sprintf("cpp_dbc:%s://%s:%s%s", u.Scheme, u.Host, u.PortOrDefault(), u.Database)
}
