package cppdbc

import (
	"context"
	"testing"
)

// fakeDriver is an in-memory RelationalDriver stand-in so registry
// dispatch can be exercised without a real backend.
type fakeDriver struct {
	scheme string
}

func (f *fakeDriver) Scheme() string { return f.scheme }
func (f *fakeDriver) Name() string   { return "Fake" }
func (f *fakeDriver) Accepts(u *ParsedURL) bool {
	return u.Scheme == f.scheme
}
func (f *fakeDriver) Connect(ctx context.Context, u *ParsedURL, user, password string) (Connection, error) {
	return &fakeConnection{BaseConnection: NewBaseConnection("cpp_dbc:"+f.scheme+"://"+u.Host, ReadCommitted, false)}, nil
}

type fakeConnection struct {
	*BaseConnection
}

func (c *fakeConnection) PrepareStatement(sql string) (Statement, error) { return nil, ErrUnsupportedFeature }
func (c *fakeConnection) ExecuteQuery(sql string) (ResultSet, error)      { return nil, ErrUnsupportedFeature }
func (c *fakeConnection) ExecuteUpdate(sql string) (uint64, error)        { return 0, ErrUnsupportedFeature }
func (c *fakeConnection) SetAutoCommit(on bool) error {
	_, err := c.SetAutoCommitLocked(on)
	return err
}
func (c *fakeConnection) BeginTransaction() (bool, error)              { return c.BeginTransactionLocked() }
func (c *fakeConnection) Commit() error                                { return c.CommitLocked() }
func (c *fakeConnection) Rollback() error                              { return c.RollbackLocked() }
func (c *fakeConnection) SetTransactionIsolation(l IsolationLevel) error { return c.SetTransactionIsolationLocked(l, false) }
func (c *fakeConnection) Close() error {
	c.TeardownLocked()
	c.CloseLocked()
	return nil
}
func (c *fakeConnection) ReturnToPool() error {
	c.TeardownLocked()
	c.ResetForPoolReturnLocked()
	return nil
}

func TestRegistryDispatchesByScheme(t *testing.T) {
	r := &Registry{}
	r.Register(&fakeDriver{scheme: "fakesql"})

	conn, err := r.GetConnection(context.Background(), "cpp_dbc:fakesql://host/db", "u", "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.GetURL() != "cpp_dbc:fakesql://host" {
		t.Fatalf("got url %q", conn.GetURL())
	}
}

func TestRegistryFirstRegisteredWins(t *testing.T) {
	r := &Registry{}
	first := &fakeDriver{scheme: "dup"}
	second := &fakeDriver{scheme: "dup"}
	r.Register(first)
	r.Register(second)

	d, err := r.find(&ParsedURL{Scheme: "dup"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != Driver(first) {
		t.Fatalf("expected first-registered driver to win")
	}
}

func TestRegistryDriverNotFound(t *testing.T) {
	r := &Registry{}
	_, err := r.GetConnection(context.Background(), "cpp_dbc:unregistered://host/db", "", "")
	if err == nil {
		t.Fatalf("expected error for unregistered scheme")
	}
	dbErr, ok := err.(*DBError)
	if !ok || dbErr.Code != CodeDriverNotFound {
		t.Fatalf("expected CodeDriverNotFound, got %v", err)
	}
}

func TestRegistryWrongFamilyReturnsDriverNotFound(t *testing.T) {
	r := &Registry{}
	r.Register(&fakeDriver{scheme: "fakesql"})
	_, err := r.GetDocumentConnection(context.Background(), "cpp_dbc:fakesql://host/db", "", "")
	if err == nil {
		t.Fatalf("expected error: fakesql driver does not yield a DocumentConnection")
	}
	dbErr, ok := err.(*DBError)
	if !ok || dbErr.Code != CodeDriverNotFound {
		t.Fatalf("expected CodeDriverNotFound, got %v", err)
	}
}
