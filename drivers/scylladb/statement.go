package scylladb

import (
	"context"
	"strings"

	"github.com/gocql/gocql"

	"cpp_dbc"
	"cpp_dbc/internal/dbclog"
	"cpp_dbc/internal/sqlfmt"
)

// Statement is the ScyllaDB cpp_dbc.Statement. gocql binds all query
// parameters in one call rather than exposing an incremental bind API, so
// Set* only populates the shared bind table; the actual gocql.Query is
// built lazily at Execute* time from a Snapshot.
type Statement struct {
	*cppdbc.BaseStatement
	conn  *Connection
	query string
}

func newStatement(conn *Connection, query string) *Statement {
	paramCount := strings.Count(query, "?")
	s := &Statement{conn: conn, query: query}
	s.BaseStatement = cppdbc.NewBaseStatement(conn.BaseConnection, query, paramCount, nil)
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
	dbclog.Debugf(context.Background(), "scylladb query: %s", sqlfmt.WithArgs(s.SQL(), args))
	s.conn.Mu.Lock()
	defer s.conn.Mu.Unlock()
	iter := s.conn.session.Query(s.query, args...).Iter()
	return newResultSet(iter)
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
	s.conn.Mu.Lock()
	defer s.conn.Mu.Unlock()
	if err := s.conn.session.Query(s.query, args...).Exec(); err != nil {
		return 0, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing prepared statement")
	}
	return 0, nil
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
	b := s.conn.session.NewBatch(gocql.LoggedBatch)
	for _, binds := range batch {
		args, err := cppdbc.ToDriverArgs(binds)
		if err != nil {
			return out, err
		}
		b.Query(s.query, args...)
	}
	if err := s.conn.session.ExecuteBatch(b); err != nil {
		return out, cppdbc.WrapError(cppdbc.CodeSqlError, err, "executing batch")
	}
	for range batch {
		out = append(out, 0)
	}
	return out, nil
}

func (s *Statement) Close() error {
	return s.BaseStatement.Close(nil)
}
