package firebird

import (
	"context"
	"database/sql"

	"cpp_dbc"
	"cpp_dbc/internal/dbclog"
)

// Connection is the Firebird cpp_dbc.Connection. Every ResultSet is
// cursor-backed (spec.md §4.4), and every data statement implicitly opens
// a transaction when autocommit is off and none is active yet (spec.md
// §4.3/§9). It pins one physical connection (conn) out of db's pool for
// its entire lifetime: *sql.DB itself multiplexes across arbitrary
// sockets, and Firebird's implicit-transaction rule in particular depends
// on every statement landing on the same server-side session that opened
// it — a BEGIN and its statement dispatched to different sockets would
// silently start two unrelated transactions.
type Connection struct {
	*cppdbc.BaseConnection
	db   *sql.DB
	conn *sql.Conn
}

// beginIfImplicitLocked issues BEGIN and flips the bookkeeping state when
// autocommit is off and no transaction is active yet. Caller must hold Mu.
func (c *Connection) beginIfImplicitLocked() error {
	if !c.GetAutoCommitLocked() && !c.TransactionActiveLocked() {
		if _, err := c.conn.ExecContext(context.Background(), "BEGIN"); err != nil {
			return cppdbc.WrapError(cppdbc.CodeTransactionError, err, "implicit transaction begin")
		}
		c.NoteImplicitBeginLocked()
	}
	return nil
}

func (c *Connection) PrepareStatement(query string) (cppdbc.Statement, error) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	if err := c.CheckOpenLocked(); err != nil {
		return nil, err
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
	if err := c.CheckOpenLocked(); err != nil {
		return nil, err
	}
	if err := c.beginIfImplicitLocked(); err != nil {
		return nil, err
	}
	rows, err := c.conn.QueryContext(context.Background(), query)
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
	if err := c.beginIfImplicitLocked(); err != nil {
		return 0, err
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
	if impliedCommit {
		if _, err := c.conn.ExecContext(context.Background(), "COMMIT"); err != nil {
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
	if _, err := c.conn.ExecContext(context.Background(), "BEGIN"); err != nil {
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
	if err := c.SetTransactionIsolationLocked(level, true); err != nil {
		return err
	}
	if _, err := c.conn.ExecContext(context.Background(), "SET TRANSACTION "+isolationSQL(level)); err != nil {
		return cppdbc.WrapError(cppdbc.CodeSqlError, err, "setting isolation level")
	}
	return nil
}

func isolationSQL(l cppdbc.IsolationLevel) string {
	switch l {
	case cppdbc.ReadCommitted:
		return "READ COMMITTED"
	case cppdbc.Serializable:
		return "ISOLATION LEVEL SERIALIZABLE"
	default:
		return "ISOLATION LEVEL SNAPSHOT"
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
			dbclog.Errorf(context.Background(), "firebird: rollback on close failed: %v", err)
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
	if err := c.CheckOpenLocked(); err != nil {
		return err
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
