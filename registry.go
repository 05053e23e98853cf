package cppdbc

import (
	"context"
	"sync"
)

// Registry is the process-wide, ordered, first-match driver registry of
// spec.md §4.2. It is the only module in cpp_dbc holding process-wide
// mutable state (spec.md §5); the zero value is ready to use.
type Registry struct {
	mu      sync.Mutex
	drivers []Driver
}

// Register appends a driver to the registry. Registration is append-only
// and idempotent only in the sense that re-registering the same instance
// is harmless; a second, distinct instance for an already-registered
// scheme is allowed, and the first-registered one wins subsequent scans
// (spec.md §4.2).
func (r *Registry) Register(d Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers = append(r.drivers, d)
}

// find scans in registration order for the first driver that accepts the
// URL, regardless of family.
func (r *Registry) find(u *ParsedURL) (Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drivers {
		if d.Accepts(u) {
			return d, nil
		}
	}
	return nil, WrapError(CodeDriverNotFound, nil, "no driver registered for scheme %q", u.Scheme)
}

// GetConnection parses url, finds the first accepting RelationalDriver or
// ColumnarDriver (both yield a Connection), and delegates to it
// (spec.md §4.2/§4.6).
func (r *Registry) GetConnection(ctx context.Context, url, user, password string) (Connection, error) {
	u, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	d, err := r.find(u)
	if err != nil {
		return nil, err
	}
	switch drv := d.(type) {
	case RelationalDriver:
		return drv.Connect(ctx, u, user, password)
	case ColumnarDriver:
		return drv.Connect(ctx, u, user, password)
	default:
		return nil, WrapError(CodeDriverNotFound, nil, "driver for scheme %q does not yield a relational/columnar Connection", u.Scheme)
	}
}

// GetDocumentConnection is the document-store analogue of GetConnection.
func (r *Registry) GetDocumentConnection(ctx context.Context, url, user, password string) (DocumentConnection, error) {
	u, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	d, err := r.find(u)
	if err != nil {
		return nil, err
	}
	drv, ok := d.(DocumentDriver)
	if !ok {
		return nil, WrapError(CodeDriverNotFound, nil, "driver for scheme %q does not yield a DocumentConnection", u.Scheme)
	}
	return drv.Connect(ctx, u, user, password)
}

// GetKeyValueConnection is the key-value-store analogue of GetConnection.
func (r *Registry) GetKeyValueConnection(ctx context.Context, url, user, password string) (KeyValueConnection, error) {
	u, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	d, err := r.find(u)
	if err != nil {
		return nil, err
	}
	drv, ok := d.(KeyValueDriver)
	if !ok {
		return nil, WrapError(CodeDriverNotFound, nil, "driver for scheme %q does not yield a KeyValueConnection", u.Scheme)
	}
	return drv.Connect(ctx, u, user, password)
}

// Default is the package-level registry used by the top-level Register/
// GetConnection convenience wrappers below, mirroring the teacher
// package's package-level driverMap/configs singleton.
var Default = &Registry{}

// Register adds d to the Default registry.
func Register(d Driver) { Default.Register(d) }

// GetConnection resolves url against the Default registry.
func GetConnection(ctx context.Context, url, user, password string) (Connection, error) {
	return Default.GetConnection(ctx, url, user, password)
}

// GetDocumentConnection resolves url against the Default registry.
func GetDocumentConnection(ctx context.Context, url, user, password string) (DocumentConnection, error) {
	return Default.GetDocumentConnection(ctx, url, user, password)
}

// GetKeyValueConnection resolves url against the Default registry.
func GetKeyValueConnection(ctx context.Context, url, user, password string) (KeyValueConnection, error) {
	return Default.GetKeyValueConnection(ctx, url, user, password)
}
