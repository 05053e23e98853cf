package cppdbc

import "context"

// Driver is the identity shared by every driver family: a scheme token
// used for URL dispatch and a human name for logs.
type Driver interface {
	Scheme() string
	Name() string
	// Accepts reports whether this driver handles the given parsed URL.
	// Every driver in this module compares u.Scheme against its own
	// Scheme(); a driver may implement it to also accept aliases.
	Accepts(u *ParsedURL) bool
}

// RelationalDriver connects to MySQL/PostgreSQL/SQLite/Firebird-shaped
// backends and yields a Connection implementing the transaction state
// machine of spec.md §4.3.
type RelationalDriver interface {
	Driver
	Connect(ctx context.Context, u *ParsedURL, user, password string) (Connection, error)
}

// ColumnarDriver connects to wide-column stores (ScyllaDB). It shares the
// relational contract's connection/statement/result-set shape (spec.md
// §4.6): a columnar connection is a Connection like any other.
type ColumnarDriver interface {
	Driver
	Connect(ctx context.Context, u *ParsedURL, user, password string) (Connection, error)
}

// DocumentDriver connects to document stores (MongoDB) and yields a
// CollectionHandle per spec.md §4.6.
type DocumentDriver interface {
	Driver
	Connect(ctx context.Context, u *ParsedURL, user, password string) (DocumentConnection, error)
}

// KeyValueDriver connects to key-value stores (Redis) and yields a
// KeyValueConnection exposing direct KV operations per spec.md §4.6.
type KeyValueDriver interface {
	Driver
	Connect(ctx context.Context, u *ParsedURL, user, password string) (KeyValueConnection, error)
}

// DocumentConnection is the minimal document-store surface named by
// spec.md §4.6: it yields collection handles and otherwise shares the
// close/return-to-pool contract of every connection kind. Query filters
// are passed as raw JSON text; cpp_dbc never parses them (spec.md §9).
type DocumentConnection interface {
	Collection(name string) CollectionHandle
	Close() error
	IsClosed() bool
	ReturnToPool() error
	IsPooled() bool
	GetURL() string
}

// CollectionHandle is a document collection: documents flow as JSON text,
// filters as JSON text, matching the original's raw-JSON query shape.
type CollectionHandle interface {
	Name() string
	Find(ctx context.Context, filterJSON string) (DocumentCursor, error)
	FindOne(ctx context.Context, filterJSON string) (string, error)
	InsertOne(ctx context.Context, documentJSON string) error
	UpdateOne(ctx context.Context, filterJSON, updateJSON string) (int64, error)
	DeleteOne(ctx context.Context, filterJSON string) (int64, error)
}

// DocumentCursor iterates documents returned by CollectionHandle.Find.
type DocumentCursor interface {
	Next(ctx context.Context) bool
	Decode() (string, error)
	Close(ctx context.Context) error
}

// KeyValueConnection is the minimal key-value surface named by spec.md
// §4.6: direct operations keyed by string, no statement/result-set layer.
type KeyValueConnection interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) (bool, error)
	Close() error
	IsClosed() bool
	ReturnToPool() error
	IsPooled() bool
	GetURL() string
}
