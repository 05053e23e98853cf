package sqlite

import (
	"context"
	"database/sql"

	"cpp_dbc"
	"cpp_dbc/internal/dbclog"
)

// Connection is the SQLite cpp_dbc.Connection. Every ResultSet it produces
// is cursor-backed and shares this connection's own mutex, since SQLite
// permits only one statement to actively iterate against the underlying
// file connection at a time (spec.md §4.4, §5).
type Connection struct {
	*cppdbc.BaseConnection
	db *sql.DB
}

func (c *Connection) PrepareStatement(query string) (cppdbc.Statement, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return nil, err
	}
	stmt, err := c.db.Prepare(query)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeSqlError, err, "preparing statement")
	}
	return newStatement(c, query, stmt), nil
}

func (c *Connection) ExecuteQuery(query string) (cppdbc.ResultSet, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return nil, err
	}
	rows, err := c.db.QueryContext(context.Background(), query)
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing query")
	}
	return cppdbc.NewCursorResultSet(&c.Mu, rows, c.IsClosedLocked)
}

func (c *Connection) ExecuteUpdate(query string) (uint64, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return 0, err
	}
	res, err := c.db.ExecContext(context.Background(), query)
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
	if impliedCommit {
		if _, err := c.db.Exec("COMMIT"); err != nil {
			return cppdbc.WrapError(cppdbc.CodeTransactionError, err, "implicit commit on setAutoCommit(true)")
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
	if _, err := c.db.Exec("BEGIN"); err != nil {
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
	if _, err := c.db.Exec("COMMIT"); err != nil {
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
	if _, err := c.db.Exec("ROLLBACK"); err != nil {
		return cppdbc.WrapError(cppdbc.CodeTransactionError, err, "rollback")
	}
	return nil
}

// SetTransactionIsolation rejects anything but Serializable: SQLite has no
// tunable isolation level, every transaction is already SERIALIZABLE.
func (c *Connection) SetTransactionIsolation(level cppdbc.IsolationLevel) error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return err
	}
	if level != cppdbc.Serializable {
		return cppdbc.WrapError(cppdbc.CodeUnsupportedFeature, nil, "sqlite only supports SERIALIZABLE isolation")
	}
	return nil
}

func (c *Connection) Close() error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if c.IsClosedLocked() {
		return nil
	}
	if wasActive := c.TeardownLocked(); wasActive {
		if _, err := c.db.Exec("ROLLBACK"); err != nil {
			dbclog.Errorf(context.Background(), "sqlite: rollback on close failed: %v", err)
		}
	}
	c.CloseLocked()
	return c.db.Close()
}

func (c *Connection) ReturnToPool() error {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return err
	}
	if wasActive := c.TeardownLocked(); wasActive {
		if _, err := c.db.Exec("ROLLBACK"); err != nil {
			c.CloseLocked()
			return cppdbc.WrapError(cppdbc.CodeConnectionFailure, err, "rollback on pool return")
		}
	}
	c.ResetForPoolReturnLocked()
	return nil
}
