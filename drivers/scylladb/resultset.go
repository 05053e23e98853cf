package scylladb

import (
	"fmt"

	"github.com/gocql/gocql"

	"cpp_dbc"
)

// ResultSet adapts a drained gocql.Iter to cppdbc.ResultSet, following the
// stored-result model (spec.md §4.4): every row is paged out of the
// iterator at construction time since gocql's own Iter is not safely
// shareable across a connection mutex the way database/sql's *sql.Rows is.
type ResultSet struct {
	columns []string
	rows    []map[string]interface{}
	pos     int
	closed  bool
}

func newResultSet(iter *gocql.Iter) (*ResultSet, error) {
	rs := &ResultSet{}
	for _, c := range iter.Columns() {
		rs.columns = append(rs.columns, c.Name)
	}
	for {
		row := make(map[string]interface{})
		if !iter.MapScan(row) {
			break
		}
		rs.rows = append(rs.rows, row)
	}
	if err := iter.Close(); err != nil {
		return nil, cppdbc.WrapError(cppdbc.CodeProtocolError, err, "iterating scylladb rows")
	}
	return rs, nil
}

func (rs *ResultSet) Next() (bool, error) {
	if rs.closed {
		return false, cppdbc.ErrConnectionClosed
	}
	if rs.pos < len(rs.rows) {
		rs.pos++
		return true, nil
	}
	rs.pos = len(rs.rows) + 1
	return false, nil
}

func (rs *ResultSet) IsBeforeFirst() bool { return rs.pos == 0 }
func (rs *ResultSet) IsAfterLast() bool   { return rs.pos > len(rs.rows) }
func (rs *ResultSet) GetRow() int {
	if rs.pos < 1 || rs.pos > len(rs.rows) {
		return 0
	}
	return rs.pos
}

func (rs *ResultSet) columnName(col interface{}) (string, error) {
	switch v := col.(type) {
	case string:
		return v, nil
	case int:
		if v < 1 || v > len(rs.columns) {
			return "", cppdbc.NewError(cppdbc.CodeColumnNotFound, "column index %d out of range [1,%d]", v, len(rs.columns))
		}
		return rs.columns[v-1], nil
	default:
		return "", cppdbc.NewError(cppdbc.CodeColumnNotFound, "unsupported column reference type %T", col)
	}
}

func (rs *ResultSet) current(col interface{}) (interface{}, error) {
	if rs.closed {
		return nil, cppdbc.ErrConnectionClosed
	}
	if rs.pos < 1 || rs.pos > len(rs.rows) {
		return nil, cppdbc.ErrResultExhausted
	}
	name, err := rs.columnName(col)
	if err != nil {
		return nil, err
	}
	v, ok := rs.rows[rs.pos-1][name]
	if !ok {
		return nil, cppdbc.WrapError(cppdbc.CodeColumnNotFound, nil, "no column named %q", name)
	}
	return v, nil
}

func (rs *ResultSet) GetColumnNames() []string {
	out := make([]string, len(rs.columns))
	copy(out, rs.columns)
	return out
}

func (rs *ResultSet) GetColumnCount() int { return len(rs.columns) }

func (rs *ResultSet) IsNull(col interface{}) (bool, error) {
	v, err := rs.current(col)
	if err != nil {
		return false, err
	}
	return v == nil, nil
}

func (rs *ResultSet) GetInt(col interface{}) (int32, error) {
	v, err := rs.current(col)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case int:
		return int32(t), nil
	case int32:
		return t, nil
	case int64:
		return int32(t), nil
	default:
		return 0, nil
	}
}

func (rs *ResultSet) GetLong(col interface{}) (int64, error) {
	v, err := rs.current(col)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	default:
		return 0, nil
	}
}

func (rs *ResultSet) GetDouble(col interface{}) (float64, error) {
	v, err := rs.current(col)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	default:
		return 0, nil
	}
}

func (rs *ResultSet) GetString(col interface{}) (string, error) {
	v, err := rs.current(col)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	if b, ok := v.(gocql.UUID); ok {
		return b.String(), nil
	}
	return fmt.Sprintf("%v", v), nil
}

func (rs *ResultSet) GetBoolean(col interface{}) (bool, error) {
	v, err := rs.current(col)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

func (rs *ResultSet) GetBytes(col interface{}) ([]byte, error) {
	v, err := rs.current(col)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	default:
		return nil, nil
	}
}

func (rs *ResultSet) GetBlob(col interface{}) (*cppdbc.Blob, error) {
	b, err := rs.GetBytes(col)
	if err != nil {
		return nil, err
	}
	return cppdbc.NewBlobBytes(b), nil
}

func (rs *ResultSet) GetBinaryStream(col interface{}) (cppdbc.InputStream, error) {
	b, err := rs.GetBlob(col)
	if err != nil {
		return nil, err
	}
	return b.Stream(), nil
}

func (rs *ResultSet) Close() error {
	rs.closed = true
	return nil
}
