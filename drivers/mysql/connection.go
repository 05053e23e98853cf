package mysql

import (
	"context"
	"database/sql"

	"cpp_dbc"
	"cpp_dbc/internal/dbclog"
)

// Connection is the MySQL cpp_dbc.Connection. It pins one physical
// connection (conn) out of db's pool for its entire lifetime: *sql.DB
// itself multiplexes across arbitrary sockets, so issuing BEGIN/the
// statement/COMMIT through db directly could scatter them across three
// different physical connections. Routing every operation through the
// same *sql.Conn instead guarantees a transaction's statements land on
// the connection that actually opened it (spec.md §4.3/§5). MySQL has no
// implicit-BEGIN-on-first-statement rule (that is a Firebird-specific
// behavior, spec.md §4.3/§9), so BeginTransaction is the only path into
// TXN_ACTIVE here.
type Connection struct {
	*cppdbc.BaseConnection
	db   *sql.DB
	conn *sql.Conn
}

func (c *Connection) PrepareStatement(query string) (cppdbc.Statement, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosedLocked() {
		return nil, cppdbc.ErrConnectionClosed
	}
	stmt, err := c.conn.PrepareContext(context.Background(), query)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeSqlError, err, "preparing statement")
	}
	return newStatement(c, query, stmt), nil
}

func (c *Connection) ExecuteQuery(query string) (cppdbc.ResultSet, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosedLocked() {
		return nil, cppdbc.ErrConnectionClosed
	}
	rows, err := c.conn.QueryContext(context.Background(), query)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing query")
	}
	return cppdbc.NewStoredResultSet(rows)
}

func (c *Connection) ExecuteUpdate(query string) (uint64, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosedLocked() {
		return 0, cppdbc.ErrConnectionClosed
	}
	res, err := c.conn.ExecContext(context.Background(), query)
	if err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing update")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeProtocolError, err, "reading rows affected")
	}
	return uint64(n), nil
}

func (c *Connection) SetAutoCommit(on bool) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	impliedCommit, err := c.SetAutoCommitLocked(on)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if impliedCommit {
		if _, err := c.conn.ExecContext(ctx, "COMMIT"); err != nil {
			return cppdbc.WrapError(cppdbc.CodeTransactionError, err, "implicit commit on setAutoCommit(true)")
		}
	}
	if !on {
		if _, err := c.conn.ExecContext(ctx, "SET autocommit=0"); err != nil {
			return cppdbc.WrapError(cppdbc.CodeTransactionError, err, "disabling autocommit")
		}
	} else {
		if _, err := c.conn.ExecContext(ctx, "SET autocommit=1"); err != nil {
			return cppdbc.WrapError(cppdbc.CodeTransactionError, err, "enabling autocommit")
		}
	}
	return nil
}

func (c *Connection) BeginTransaction() (bool, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	isNew, err := c.BeginTransactionLocked()
	if err != nil || !isNew {
		return isNew, err
	}
	if _, err := c.conn.ExecContext(context.Background(), "START TRANSACTION"); err != nil {
		return false, cppdbc.WrapError(cppdbc.CodeTransactionError, err, "starting transaction")
	}
	return true, nil
}

func (c *Connection) Commit() error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CommitLocked(); err != nil {
		return err
	}
	if _, err := c.conn.ExecContext(context.Background(), "COMMIT"); err != nil {
		return cppdbc.WrapError(cppdbc.CodeTransactionError, err, "commit")
	}
	return nil
}

func (c *Connection) Rollback() error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.RollbackLocked(); err != nil {
		return err
	}
	if _, err := c.conn.ExecContext(context.Background(), "ROLLBACK"); err != nil {
		return cppdbc.WrapError(cppdbc.CodeTransactionError, err, "rollback")
	}
	return nil
}

func (c *Connection) SetTransactionIsolation(level cppdbc.IsolationLevel) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.SetTransactionIsolationLocked(level, false); err != nil {
		return err
	}
	if _, err := c.conn.ExecContext(context.Background(), "SET SESSION TRANSACTION ISOLATION LEVEL "+isolationSQL(level)); err != nil {
		return cppdbc.WrapError(cppdbc.CodeSqlError, err, "setting isolation level")
	}
	return nil
}

func isolationSQL(l cppdbc.IsolationLevel) string {
	switch l {
	case cppdbc.ReadUncommitted:
		return "READ UNCOMMITTED"
	case cppdbc.ReadCommitted:
		return "READ COMMITTED"
	case cppdbc.Serializable:
		return "SERIALIZABLE"
	default:
		return "REPEATABLE READ"
	}
}

func (c *Connection) Close() error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosedLocked() {
		return nil
	}
	if wasActive := c.TeardownLocked(); wasActive {
		if _, err := c.conn.ExecContext(context.Background(), "ROLLBACK"); err != nil {
			dbclog.Errorf(context.Background(), "mysql: rollback on close failed: %v", err)
		}
	}
	c.CloseLocked()
	connErr := c.conn.Close()
	dbErr := c.db.Close()
	if connErr != nil {
		return connErr
	}
	return dbErr
}

func (c *Connection) ReturnToPool() error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosedLocked() {
		return cppdbc.ErrConnectionClosed
	}
	if wasActive := c.TeardownLocked(); wasActive {
		if _, err := c.conn.ExecContext(context.Background(), "ROLLBACK"); err != nil {
			c.CloseLocked()
			return cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "rollback on pool return")
		}
	}
	c.ResetForPoolReturnLocked()
	return nil
}
