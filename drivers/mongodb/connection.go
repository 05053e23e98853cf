package mongodb

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"cpp_dbc"
)

// Connection is the MongoDB cpp_dbc.DocumentConnection.
type Connection struct {
	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
	url    string
	closed bool
	pooled bool
}

func (c *Connection) Collection(name string) cppdbc.CollectionHandle {
	return &Collection{conn: c, coll: c.db.Collection(name), name: name}
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Disconnect(context.Background())
}

func (c *Connection) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// ReturnToPool is a no-op: MongoDB's driver already pools connections
// internally inside mongo.Client, so cpp_dbc's own Pool treats a
// Connection as a thin, individually-returnable handle onto that shared
// client (spec.md §4.6's "document/kv connections share the close/
// return-to-pool contract" note, satisfied trivially here).
func (c *Connection) ReturnToPool() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cppdbc.ErrConnectionClosed
	}
	return nil
}

func (c *Connection) IsPooled() bool { return c.pooled }
func (c *Connection) GetURL() string { return c.url }
