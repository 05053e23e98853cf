package scylladb

import (
	"github.com/gocql/gocql"

	"cpp_dbc"
)

// Connection is the ScyllaDB cpp_dbc.Connection. CQL has no server-side
// transactions, so BeginTransaction/Commit/Rollback/SetAutoCommit(false)
// all report cppdbc.ErrUnsupportedFeature instead of pretending to
// succeed.
type Connection struct {
	*cppdbc.BaseConnection
	session *gocql.Session
}

func (c *Connection) PrepareStatement(query string) (cppdbc.Statement, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return nil, err
	}
	return newStatement(c, query), nil
}

func (c *Connection) ExecuteQuery(query string) (cppdbc.ResultSet, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return nil, err
	}
	iter := c.session.Query(query).Iter()
	return newResultSet(iter)
}

func (c *Connection) ExecuteUpdate(query string) (uint64, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return 0, err
	}
	if err := c.session.Query(query).Exec(); err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing statement")
	}
	return 0, nil
}

func (c *Connection) SetAutoCommit(on bool) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if !on {
		return cppdbc.WrapError(cppdbc.CodeUnsupportedFeature, nil, "scylladb has no transactions")
	}
	_, err := c.SetAutoCommitLocked(true)
	return err
}

func (c *Connection) BeginTransaction() (bool, error) {
	return false, cppdbc.WrapError(cppdbc.CodeUnsupportedFeature, nil, "scylladb has no transactions")
}

func (c *Connection) Commit() error {
	return cppdbc.WrapError(cppdbc.CodeUnsupportedFeature, nil, "scylladb has no transactions")
}

func (c *Connection) Rollback() error {
	return cppdbc.WrapError(cppdbc.CodeUnsupportedFeature, nil, "scylladb has no transactions")
}

func (c *Connection) SetTransactionIsolation(level cppdbc.IsolationLevel) error {
	return cppdbc.WrapError(cppdbc.CodeUnsupportedFeature, nil, "scylladb has no tunable isolation levels")
}

func (c *Connection) Close() error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosedLocked() {
		return nil
	}
	c.TeardownLocked()
	c.CloseLocked()
	c.session.Close()
	return nil
}

func (c *Connection) ReturnToPool() error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return err
	}
	c.TeardownLocked()
	c.ResetForPoolReturnLocked()
	return nil
}
