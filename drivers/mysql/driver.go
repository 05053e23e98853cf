// Package mysql is the MySQL/MariaDB relational driver: stored-result
// execution model (spec.md §4.4), server-side prepared statements via
// database/sql, wired to github.com/go-sql-driver/mysql — the teacher
// package's own direct dependency.
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"cpp_dbc"
)

const scheme = "mysql"

// Driver is the cpp_dbc.RelationalDriver for MySQL/MariaDB.
type Driver struct{}

// NewDriver returns a ready-to-register MySQL driver.
func NewDriver() *Driver { return &Driver{} }

func (Driver) Scheme() string { return scheme }
func (Driver) Name() string   { return "MySQL" }

func (Driver) Accepts(u *cppdbc.ParsedURL) bool { return u.Scheme == scheme }

// Connect opens a *sql.DB against the MySQL backend named by u and wraps
// it in a Connection reporting MySQL's REPEATABLE READ default isolation
// (spec.md §4.3).
func (d Driver) Connect(ctx context.Context, u *cppdbc.ParsedURL, user, password string) (cppdbc.Connection, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, password, u.Host, u.PortOrDefault(), u.Database)
	if len(u.Options) > 0 {
		dsn += "?"
		first := true
		for k, v := range u.Options {
			if !first {
				dsn += "&"
			}
			first = false
			dsn += fmt.Sprintf("%s=%s", k, v)
		}
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "opening mysql connection")
	}
	// *sql.DB is itself a pool of physical sockets; a cpp_dbc Connection is
	// one session, so one physical connection is pinned for its entire
	// lifetime (db.Conn) rather than letting BEGIN/the statement/COMMIT
	// each dispatch to whichever socket database/sql picks next.
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "acquiring mysql connection")
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "connecting to mysql at %s:%s", u.Host, u.PortOrDefault())
	}
	base := cppdbc.NewBaseConnection(rawURL(u), cppdbc.RepeatableRead, false)
	return &Connection{BaseConnection: base, db: db, conn: conn}, nil
}

func rawURL(u *cppdbc.ParsedURL) string {
	return fmt.Sprintf("cpp_dbc:%s://%s:%s/%s", u.Scheme, u.Host, u.PortOrDefault(), u.Database)
}
