// Package postgresql is the PostgreSQL relational driver: stored-result
// execution model (spec.md §4.4), $n placeholders (not normalized to `?`,
// spec.md §4.5), wired to github.com/jackc/pgx/v5's database/sql stdlib
// adapter — grounded on rei0721-learn-skills-template's
// gorm.io/driver/postgres, which itself wraps jackc/pgx/v5.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"cpp_dbc"
)

const scheme = "postgresql"

// Driver is the cpp_dbc.RelationalDriver for PostgreSQL.
type Driver struct{}

// NewDriver returns a ready-to-register PostgreSQL driver.
func NewDriver() *Driver { return &Driver{} }

func (Driver) Scheme() string                   { return scheme }
func (Driver) Name() string                     { return "PostgreSQL" }
func (Driver) Accepts(u *cppdbc.ParsedURL) bool { return u.Scheme == scheme }

// Connect opens a *sql.DB against the PostgreSQL backend named by u and
// wraps it in a Connection reporting PostgreSQL's READ COMMITTED default
// isolation (spec.md §4.3).
func (d Driver) Connect(ctx context.Context, u *cppdbc.ParsedURL, user, password string) (cppdbc.Connection, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, u.Host, u.PortOrDefault(), u.Database)
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
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "opening postgresql connection")
	}
	// *sql.DB pools physical sockets; a cpp_dbc Connection is one session,
	// so one physical connection is pinned for its entire lifetime
	// (db.Conn) rather than letting BEGIN/the statement/COMMIT each
	// dispatch to whichever socket database/sql picks next.
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "acquiring postgresql connection")
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		db.Close()
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "connecting to postgresql at %s:%s", u.Host, u.PortOrDefault())
	}
	base := cppdbc.NewBaseConnection(rawURL(u), cppdbc.ReadCommitted, false)
	return &Connection{BaseConnection: base, db: db, conn: conn}, nil
}

func rawURL(u *cppdbc.ParsedURL) string {
	return fmt.Sprintf("cpp_dbc:%s://%s:%s/%s", u.Scheme, u.Host, u.PortOrDefault(), u.Database)
}
