// Package redis is the Redis key-value driver (spec.md §4.6): a minimal
// Get/Set/Delete surface keyed by string, with no statement or result-set
// layer. Wired to github.com/redis/go-redis/v9 — grounded on the teacher's
// Core/DB connect-and-ping sequence, adapted since Redis has no
// transactional connection state machine to share with the relational
// drivers.
package redis

import (
	"context"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"cpp_dbc"
)

const scheme = "redis"

// Driver is the cpp_dbc.KeyValueDriver for Redis.
type Driver struct{}

// NewDriver returns a ready-to-register Redis driver.
func NewDriver() *Driver { return &Driver{} }

func (Driver) Scheme() string                  { return scheme }
func (Driver) Name() string                    { return "Redis" }
func (Driver) Accepts(u *cppdbc.ParsedURL) bool { return u.Scheme == scheme }

// Connect opens a go-redis client against u.Host:u.Port, selecting the
// database index carried in u.Database (spec.md §4.1: Redis URLs encode
// the logical DB number in the path, "cpp_dbc:redis://host:6379/0").
func (d Driver) Connect(ctx context.Context, u *cppdbc.ParsedURL, user, password string) (cppdbc.KeyValueConnection, error) {
	dbIndex := 0
	if u.Database != "" {
		n, err := strconv.Atoi(u.Database)
		if err != nil {
			return nil, cppdbc.WrapError(cppdbc.CodeInvalidURL, err, "redis database index %q is not numeric", u.Database)
		}
		dbIndex = n
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%s", u.Host, u.PortOrDefault()),
		Username: user,
		Password: password,
		DB:       dbIndex,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "connecting to redis at %s:%s", u.Host, u.PortOrDefault())
	}
	return &Connection{client: client, url: rawURL(u)}, nil
}

func rawURL(u *cppdbc.ParsedURL) string {
	return "cpp_dbc:redis://" + u.Host + ":" + u.PortOrDefault() + "/" + u.Database
}
