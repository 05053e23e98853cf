// Package mongodb is the MongoDB document driver (spec.md §4.6): documents
// and filters move as raw JSON text, never parsed or validated by cpp_dbc
// itself (spec.md §9), and translated to BSON only at the boundary of this
// package. Wired to go.mongodb.org/mongo-driver/mongo — grounded on the
// teacher's Core/DB connect-and-ping sequence in gdb_core.go, adapted
// since MongoDB has no relational transaction state machine to share.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cpp_dbc"
)

const scheme = "mongodb"

// Driver is the cpp_dbc.DocumentDriver for MongoDB.
type Driver struct{}

// NewDriver returns a ready-to-register MongoDB driver.
func NewDriver() *Driver { return &Driver{} }

func (Driver) Scheme() string                  { return scheme }
func (Driver) Name() string                    { return "MongoDB" }
func (Driver) Accepts(u *cppdbc.ParsedURL) bool { return u.Scheme == scheme }

// Connect dials a mongo.Client against u.Host:u.Port and pings it, binding
// the session to the database named by u.Database.
func (d Driver) Connect(ctx context.Context, u *cppdbc.ParsedURL, user, password string) (cppdbc.DocumentConnection, error) {
	uri := fmt.Sprintf("mongodb://%s:%s", u.Host, u.PortOrDefault())
	opts := options.Client().ApplyURI(uri)
	if user != "" {
		opts = opts.SetAuth(options.Credential{Username: user, Password: password})
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "connecting to mongodb at %s:%s", u.Host, u.PortOrDefault())
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "pinging mongodb at %s:%s", u.Host, u.PortOrDefault())
	}
	return &Connection{
		client: client,
		db:     client.Database(u.Database),
		url:    rawURL(u),
	}, nil
}

func rawURL(u *cppdbc.ParsedURL) string {
	return "cpp_dbc:mongodb://" + u.Host + ":" + u.PortOrDefault() + "/" + u.Database
}
