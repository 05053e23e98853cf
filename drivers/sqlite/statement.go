package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"cpp_dbc"
	"cpp_dbc/internal/dbclog"
	"cpp_dbc/internal/sqlfmt"
)

// Statement is the SQLite cpp_dbc.Statement.
type Statement struct {
	*cppdbc.BaseStatement
	conn *Connection
	stmt *sql.Stmt
}

func newStatement(conn *Connection, query string, stmt *sql.Stmt) *Statement {
	paramCount := strings.Count(query, "?")
	s := &Statement{conn: conn, stmt: stmt}
	s.BaseStatement = cppdbc.NewBaseStatement(conn.BaseConnection, query, paramCount, func() {
		stmt.Close()
	})
	return s
}

func (s *Statement) SetInt(i int, v int32) error      { return s.Set(i, cppdbc.TypeInteger, v) }
func (s *Statement) SetLong(i int, v int64) error     { return s.Set(i, cppdbc.TypeLong, v) }
func (s *Statement) SetFloat(i int, v float32) error  { return s.Set(i, cppdbc.TypeFloat, v) }
func (s *Statement) SetDouble(i int, v float64) error { return s.Set(i, cppdbc.TypeDouble, v) }
func (s *Statement) SetString(i int, v string) error  { return s.Set(i, cppdbc.TypeVarchar, v) }
func (s *Statement) SetBoolean(i int, v bool) error   { return s.Set(i, cppdbc.TypeBoolean, v) }
func (s *Statement) SetBlob(i int, v *cppdbc.Blob) error {
	return s.Set(i, cppdbc.TypeBlob, v)
}
func (s *Statement) SetBinaryStream(i int, v cppdbc.InputStream, size int64) error {
	return s.Set(i, cppdbc.TypeBlob, cppdbc.NewBlobStream(v, size))
}
func (s *Statement) SetNull(i int, t cppdbc.ValueType) error { return s.SetNullSlot(i, t) }

// ExecuteQuery runs the statement against the live connection, returning a
// CursorResultSet that shares the owning connection's mutex (spec.md §4.4's
// cursor-fetch model).
func (s *Statement) ExecuteQuery() (cppdbc.ResultSet, error) {
	if err := s.CheckOpen(); err != nil {
		return nil, err
	}
	binds, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	args, err := cppdbc.ToDriverArgs(binds)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	dbclog.Debugf(ctx, "sqlite query: %s", sqlfmt.WithArgs(s.SQL(), args))
	s.conn.Mu.Lock()
	rows, err := s.stmt.QueryContext(ctx, args...)
	s.conn.Mu.Unlock()
	if err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing prepared query")
	}
	return cppdbc.NewCursorResultSet(&s.conn.Mu, rows, s.conn.IsClosedLocked)
}

func (s *Statement) ExecuteUpdate() (uint64, error) {
	if err := s.CheckOpen(); err != nil {
		return 0, err
	}
	binds, err := s.Snapshot()
	if err != nil {
		return 0, err
	}
	args, err := cppdbc.ToDriverArgs(binds)
	if err != nil {
		return 0, err
	}
	ctx := context.Background()
	dbclog.Debugf(ctx, "sqlite update: %s", sqlfmt.WithArgs(s.SQL(), args))
	s.conn.Mu.Lock()
	defer s.conn.Mu.Unlock()
	res, err := s.stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing prepared update")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeProtocolError, err, "reading rows affected")
	}
	return uint64(n), nil
}

func (s *Statement) Execute() (bool, error) {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(s.SQL())), "SELECT") {
		rs, err := s.ExecuteQuery()
		if err != nil {
			return false, err
		}
		s.SetLastResultSet(rs)
		return true, nil
	}
	s.SetLastResultSet(nil)
	if _, err := s.ExecuteUpdate(); err != nil {
		return false, err
	}
	return false, nil
}

func (s *Statement) ExecuteBatch() ([]uint64, error) {
	batch := s.TakeBatch()
	out := make([]uint64, 0, len(batch))
	s.conn.Mu.Lock()
	defer s.conn.Mu.Unlock()
	for _, binds := range batch {
		args, err := cppdbc.ToDriverArgs(binds)
		if err != nil {
			return out, err
		}
		res, err := s.stmt.ExecContext(context.Background(), args...)
		if err != nil {
			return out, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing batch entry")
		}
		n, _ := res.RowsAffected()
		out = append(out, uint64(n))
	}
	return out, nil
}

func (s *Statement) Close() error {
	return s.BaseStatement.Close(func() error { return s.stmt.Close() })
}
