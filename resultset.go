package cppdbc

import (
	"database/sql"
	"fmt"
	"sync"
)

// ResultSet is the positional row cursor contract shared by both physical
// models described in spec.md §4.4.
type ResultSet interface {
	Next() (bool, error)
	IsBeforeFirst() bool
	IsAfterLast() bool
	GetRow() int

	GetInt(col interface{}) (int32, error)
	GetLong(col interface{}) (int64, error)
	GetDouble(col interface{}) (float64, error)
	GetString(col interface{}) (string, error)
	GetBoolean(col interface{}) (bool, error)
	GetBlob(col interface{}) (*Blob, error)
	GetBinaryStream(col interface{}) (InputStream, error)
	GetBytes(col interface{}) ([]byte, error)
	IsNull(col interface{}) (bool, error)

	GetColumnNames() []string
	GetColumnCount() int

	Close() error
}

// columnIndex resolves a 1-based positional or string-named column
// reference against the given column name list, returning a 0-based
// index into row storage.
func columnIndex(names []string, col interface{}) (int, error) {
	switch v := col.(type) {
	case int:
		if v < 1 || v > len(names) {
			return 0, NewError(CodeColumnNotFound, "column index %d out of range [1,%d]", v, len(names))
		}
		return v - 1, nil
	case string:
		for i, n := range names {
			if n == v {
				return i, nil
			}
		}
		return 0, WrapError(CodeColumnNotFound, nil, "no column named %q", v)
	default:
		return 0, NewError(CodeColumnNotFound, "unsupported column reference type %T", col)
	}
}

// ---------------------------------------------------------------------
// Stored-result model (MySQL, PostgreSQL): fully materialized, detached
// from the connection at construction time. Own mutex; never touches the
// connection (spec.md §4.4, §5).
// ---------------------------------------------------------------------

// StoredResultSet holds every row in client memory, fetched once at
// construction time from a *sql.Rows that is closed before this type is
// ever used by a caller.
type StoredResultSet struct {
	mu sync.Mutex

	columns []string
	rows    [][]interface{}
	pos     int // 0 = before-first; 1..len(rows) = in range; len(rows)+1 = after-last
	closed  bool
}

// NewStoredResultSet drains rows into memory and closes it.
func NewStoredResultSet(rows *sql.Rows) (*StoredResultSet, error) {
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, WrapError(CodeProtocolError, err, "reading column names")
	}
	rs := &StoredResultSet{columns: cols}
	scratch := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range scratch {
		ptrs[i] = &scratch[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, WrapError(CodeProtocolError, err, "scanning row")
		}
		row := make([]interface{}, len(cols))
		copy(row, scratch)
		rs.rows = append(rs.rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(CodeProtocolError, err, "iterating rows")
	}
	return rs, nil
}

func (rs *StoredResultSet) Next() (bool, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.closed {
		return false, ErrConnectionClosed
	}
	if rs.pos < len(rs.rows) {
		rs.pos++
		return true, nil
	}
	rs.pos = len(rs.rows) + 1
	return false, nil
}

func (rs *StoredResultSet) IsBeforeFirst() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.pos == 0
}

func (rs *StoredResultSet) IsAfterLast() bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.pos > len(rs.rows)
}

func (rs *StoredResultSet) GetRow() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.pos < 1 || rs.pos > len(rs.rows) {
		return 0
	}
	return rs.pos
}

func (rs *StoredResultSet) currentLocked(col interface{}) (interface{}, error) {
	if rs.closed {
		return nil, ErrConnectionClosed
	}
	if rs.pos < 1 || rs.pos > len(rs.rows) {
		return nil, ErrResultExhausted
	}
	idx, err := columnIndex(rs.columns, col)
	if err != nil {
		return nil, err
	}
	return rs.rows[rs.pos-1][idx], nil
}

func (rs *StoredResultSet) GetColumnNames() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]string, len(rs.columns))
	copy(out, rs.columns)
	return out
}

func (rs *StoredResultSet) GetColumnCount() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.columns)
}

func (rs *StoredResultSet) IsNull(col interface{}) (bool, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return false, err
	}
	return v == nil, nil
}

func (rs *StoredResultSet) GetInt(col interface{}) (int32, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return 0, err
	}
	return toInt32(v), nil
}

func (rs *StoredResultSet) GetLong(col interface{}) (int64, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return 0, err
	}
	return toInt64(v), nil
}

func (rs *StoredResultSet) GetDouble(col interface{}) (float64, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return 0, err
	}
	return toFloat64(v), nil
}

func (rs *StoredResultSet) GetString(col interface{}) (string, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return "", err
	}
	return toStringVal(v), nil
}

func (rs *StoredResultSet) GetBoolean(col interface{}) (bool, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return false, err
	}
	return toBool(v), nil
}

func (rs *StoredResultSet) GetBytes(col interface{}) ([]byte, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return nil, err
	}
	return toBytes(v), nil
}

func (rs *StoredResultSet) GetBlob(col interface{}) (*Blob, error) {
	b, err := rs.GetBytes(col)
	if err != nil {
		return nil, err
	}
	return NewBlobBytes(b), nil
}

func (rs *StoredResultSet) GetBinaryStream(col interface{}) (InputStream, error) {
	b, err := rs.GetBlob(col)
	if err != nil {
		return nil, err
	}
	return b.Stream(), nil
}

func (rs *StoredResultSet) Close() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.closed = true
	return nil
}

// ---------------------------------------------------------------------
// Cursor-fetch model (SQLite, Firebird): each Next() fetches against the
// live *sql.Rows, sharing the owning connection's mutex (spec.md §4.4,
// §5).
// ---------------------------------------------------------------------

// CursorResultSet is a view onto a live *sql.Rows whose every method
// acquires the owning connection's mutex before touching it, so that a
// concurrent connection-level close (or another statement on the same
// connection, where the backend allows it) cannot race with iteration.
type CursorResultSet struct {
	connMu *sync.Mutex
	rows   *sql.Rows
	cols   []string

	pos        int
	afterLast  bool
	currentRow []interface{}
	closed     bool
	isClosedFn func() bool
}

// NewCursorResultSet wraps a live *sql.Rows. connMu must be the same
// mutex instance the owning connection locks on every public operation.
func NewCursorResultSet(connMu *sync.Mutex, rows *sql.Rows, isClosedFn func() bool) (*CursorResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, WrapError(CodeProtocolError, err, "reading column names")
	}
	return &CursorResultSet{connMu: connMu, rows: rows, cols: cols, isClosedFn: isClosedFn}, nil
}

func (rs *CursorResultSet) Next() (bool, error) {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	if rs.closed || (rs.isClosedFn != nil && rs.isClosedFn()) {
		return false, ErrConnectionClosed
	}
	if !rs.rows.Next() {
		if err := rs.rows.Err(); err != nil {
			return false, WrapError(CodeProtocolError, err, "fetching next row")
		}
		rs.afterLast = true
		rs.currentRow = nil
		return false, nil
	}
	scratch := make([]interface{}, len(rs.cols))
	ptrs := make([]interface{}, len(rs.cols))
	for i := range scratch {
		ptrs[i] = &scratch[i]
	}
	if err := rs.rows.Scan(ptrs...); err != nil {
		return false, WrapError(CodeProtocolError, err, "scanning row")
	}
	rs.currentRow = scratch
	rs.pos++
	return true, nil
}

func (rs *CursorResultSet) IsBeforeFirst() bool {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	return rs.pos == 0 && !rs.afterLast
}

func (rs *CursorResultSet) IsAfterLast() bool {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	return rs.afterLast
}

func (rs *CursorResultSet) GetRow() int {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	if rs.currentRow == nil {
		return 0
	}
	return rs.pos
}

func (rs *CursorResultSet) currentLocked(col interface{}) (interface{}, error) {
	if rs.closed || (rs.isClosedFn != nil && rs.isClosedFn()) {
		return nil, ErrConnectionClosed
	}
	if rs.currentRow == nil {
		return nil, ErrResultExhausted
	}
	idx, err := columnIndex(rs.cols, col)
	if err != nil {
		return nil, err
	}
	return rs.currentRow[idx], nil
}

func (rs *CursorResultSet) GetColumnNames() []string {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	out := make([]string, len(rs.cols))
	copy(out, rs.cols)
	return out
}

func (rs *CursorResultSet) GetColumnCount() int {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	return len(rs.cols)
}

func (rs *CursorResultSet) IsNull(col interface{}) (bool, error) {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return false, err
	}
	return v == nil, nil
}

func (rs *CursorResultSet) GetInt(col interface{}) (int32, error) {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return 0, err
	}
	return toInt32(v), nil
}

func (rs *CursorResultSet) GetLong(col interface{}) (int64, error) {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return 0, err
	}
	return toInt64(v), nil
}

func (rs *CursorResultSet) GetDouble(col interface{}) (float64, error) {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return 0, err
	}
	return toFloat64(v), nil
}

func (rs *CursorResultSet) GetString(col interface{}) (string, error) {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return "", err
	}
	return toStringVal(v), nil
}

func (rs *CursorResultSet) GetBoolean(col interface{}) (bool, error) {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return false, err
	}
	return toBool(v), nil
}

func (rs *CursorResultSet) GetBytes(col interface{}) ([]byte, error) {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	v, err := rs.currentLocked(col)
	if err != nil {
		return nil, err
	}
	return toBytes(v), nil
}

func (rs *CursorResultSet) GetBlob(col interface{}) (*Blob, error) {
	b, err := rs.GetBytes(col)
	if err != nil {
		return nil, err
	}
	return NewBlobBytes(b), nil
}

func (rs *CursorResultSet) GetBinaryStream(col interface{}) (InputStream, error) {
	b, err := rs.GetBlob(col)
	if err != nil {
		return nil, err
	}
	return b.Stream(), nil
}

// Close closes the underlying cursor. Idempotent. It acquires connMu
// itself like every other method, so callers must not already hold the
// connection's mutex.
func (rs *CursorResultSet) Close() error {
	rs.connMu.Lock()
	defer rs.connMu.Unlock()
	if rs.closed {
		return nil
	}
	rs.closed = true
	return rs.rows.Close()
}

// --- scalar coercion helpers, shared by both result set kinds ---------

func toInt32(v interface{}) int32 {
	switch t := v.(type) {
	case int64:
		return int32(t)
	case int32:
		return t
	case float64:
		return int32(t)
	case []byte:
		var n int64
		fmt.Sscanf(string(t), "%d", &n)
		return int32(n)
	case string:
		var n int64
		fmt.Sscanf(t, "%d", &n)
		return int32(n)
	default:
		return 0
	}
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int32:
		return int64(t)
	case float64:
		return int64(t)
	case []byte:
		var n int64
		fmt.Sscanf(string(t), "%d", &n)
		return n
	case string:
		var n int64
		fmt.Sscanf(t, "%d", &n)
		return n
	default:
		return 0
	}
}

func toFloat64(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int64:
		return float64(t)
	case []byte:
		var f float64
		fmt.Sscanf(string(t), "%g", &f)
		return f
	case string:
		var f float64
		fmt.Sscanf(t, "%g", &f)
		return f
	default:
		return 0
	}
}

func toStringVal(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func toBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int64:
		return t != 0
	case []byte:
		return len(t) > 0 && t[0] != 0 && string(t) != "false"
	case string:
		return t == "true" || t == "1"
	default:
		return false
	}
}

func toBytes(v interface{}) []byte {
	switch t := v.(type) {
	case []byte:
		return t
	case string:
		return []byte(t)
	case nil:
		return nil
	default:
		return []byte(fmt.Sprintf("%v", t))
	}
}
