// Package scylladb is the ScyllaDB columnar driver (spec.md §4.6): it
// shares the relational Connection/Statement/ResultSet contract, but CQL
// has no transactions, so BeginTransaction/Commit/Rollback/SetAutoCommit
// report cppdbc.ErrUnsupportedFeature rather than silently no-opping.
// Wired to github.com/gocql/gocql — grounded on the teacher's Core/DB
// split for connection bookkeeping, adapted since gocql exposes its own
// Session/Query/Iter API instead of database/sql.
package scylladb

import (
	"context"
	"strconv"
	"strings"

	"github.com/gocql/gocql"

	"cpp_dbc"
)

const scheme = "scylladb"

// Driver is the cpp_dbc.ColumnarDriver for ScyllaDB.
type Driver struct{}

// NewDriver returns a ready-to-register ScyllaDB driver.
func NewDriver() *Driver { return &Driver{} }

func (Driver) Scheme() string                  { return scheme }
func (Driver) Name() string                    { return "ScyllaDB" }
func (Driver) Accepts(u *cppdbc.ParsedURL) bool { return u.Scheme == scheme }

// Connect opens a gocql session against the cluster named by u.Host,
// optionally seeded with additional contact points from the "hosts"
// option (comma-separated, spec.md §4.1's extension-option grammar).
func (d Driver) Connect(ctx context.Context, u *cppdbc.ParsedURL, user, password string) (cppdbc.Connection, error) {
	hosts := []string{u.Host}
	if extra, ok := u.Options["hosts"]; ok && extra != "" {
		hosts = append(hosts, strings.Split(extra, ",")...)
	}
	cluster := gocql.NewCluster(hosts...)
	cluster.Port = 9042
	if p, err := strconv.Atoi(u.PortOrDefault()); err == nil {
		cluster.Port = p
	}
	cluster.Keyspace = u.Database
	cluster.Consistency = gocql.Quorum
	if user != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{Username: user, Password: password}
	}
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "connecting to scylladb at %s", u.Host)
	}
	base := cppdbc.NewBaseConnection(rawURL(u), cppdbc.Serializable, false)
	return &Connection{BaseConnection: base, session: session}, nil
}

func rawURL(u *cppdbc.ParsedURL) string {
	return "cpp_dbc:scylladb://" + u.Host + "/" + u.Database
}
