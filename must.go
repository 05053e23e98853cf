package cppdbc

// Must* wrappers are the "throwing" API flavor spec.md §6 asks for
// alongside the error-returning flavor every Connection, Statement and
// ResultSet method already has. Go has no exceptions, so each wrapper
// calls the real method, panics with its error unchanged, and returns the
// success value — grounded on gdb_result.go's
// MustGetAffected/MustGetInsertId: the wrapper runs the very method it
// wraps, so success-path behavior and error codes are identical by
// construction.

// MustPrepareStatement calls c.PrepareStatement and panics on error.
func MustPrepareStatement(c Connection, query string) Statement {
	stmt, err := c.PrepareStatement(query)
	if err != nil {
		panic(err)
	}
	return stmt
}

// MustExecuteQuery calls c.ExecuteQuery and panics on error.
func MustExecuteQuery(c Connection, query string) ResultSet {
	rs, err := c.ExecuteQuery(query)
	if err != nil {
		panic(err)
	}
	return rs
}

// MustExecuteUpdate calls c.ExecuteUpdate and panics on error.
func MustExecuteUpdate(c Connection, query string) uint64 {
	n, err := c.ExecuteUpdate(query)
	if err != nil {
		panic(err)
	}
	return n
}

// MustSetAutoCommit calls c.SetAutoCommit and panics on error.
func MustSetAutoCommit(c Connection, on bool) {
	if err := c.SetAutoCommit(on); err != nil {
		panic(err)
	}
}

// MustBeginTransaction calls c.BeginTransaction and panics on error.
func MustBeginTransaction(c Connection) bool {
	isNew, err := c.BeginTransaction()
	if err != nil {
		panic(err)
	}
	return isNew
}

// MustCommit calls c.Commit and panics on error.
func MustCommit(c Connection) {
	if err := c.Commit(); err != nil {
		panic(err)
	}
}

// MustRollback calls c.Rollback and panics on error.
func MustRollback(c Connection) {
	if err := c.Rollback(); err != nil {
		panic(err)
	}
}

// MustSetTransactionIsolation calls c.SetTransactionIsolation and panics
// on error.
func MustSetTransactionIsolation(c Connection, level IsolationLevel) {
	if err := c.SetTransactionIsolation(level); err != nil {
		panic(err)
	}
}

// MustClose calls c.Close and panics on error.
func MustClose(c Connection) {
	if err := c.Close(); err != nil {
		panic(err)
	}
}

// MustReturnToPool calls c.ReturnToPool and panics on error.
func MustReturnToPool(c Connection) {
	if err := c.ReturnToPool(); err != nil {
		panic(err)
	}
}

// MustSetInt calls s.SetInt and panics on error.
func MustSetInt(s Statement, index int, v int32) {
	if err := s.SetInt(index, v); err != nil {
		panic(err)
	}
}

// MustSetLong calls s.SetLong and panics on error.
func MustSetLong(s Statement, index int, v int64) {
	if err := s.SetLong(index, v); err != nil {
		panic(err)
	}
}

// MustSetFloat calls s.SetFloat and panics on error.
func MustSetFloat(s Statement, index int, v float32) {
	if err := s.SetFloat(index, v); err != nil {
		panic(err)
	}
}

// MustSetDouble calls s.SetDouble and panics on error.
func MustSetDouble(s Statement, index int, v float64) {
	if err := s.SetDouble(index, v); err != nil {
		panic(err)
	}
}

// MustSetString calls s.SetString and panics on error.
func MustSetString(s Statement, index int, v string) {
	if err := s.SetString(index, v); err != nil {
		panic(err)
	}
}

// MustSetBoolean calls s.SetBoolean and panics on error.
func MustSetBoolean(s Statement, index int, v bool) {
	if err := s.SetBoolean(index, v); err != nil {
		panic(err)
	}
}

// MustSetBlob calls s.SetBlob and panics on error.
func MustSetBlob(s Statement, index int, v *Blob) {
	if err := s.SetBlob(index, v); err != nil {
		panic(err)
	}
}

// MustSetBinaryStream calls s.SetBinaryStream and panics on error.
func MustSetBinaryStream(s Statement, index int, v InputStream, size int64) {
	if err := s.SetBinaryStream(index, v, size); err != nil {
		panic(err)
	}
}

// MustSetNull calls s.SetNull and panics on error.
func MustSetNull(s Statement, index int, t ValueType) {
	if err := s.SetNull(index, t); err != nil {
		panic(err)
	}
}

// MustAddBatch calls s.AddBatch and panics on error.
func MustAddBatch(s Statement) {
	if err := s.AddBatch(); err != nil {
		panic(err)
	}
}

// MustExecuteBatch calls s.ExecuteBatch and panics on error.
func MustExecuteBatch(s Statement) []uint64 {
	counts, err := s.ExecuteBatch()
	if err != nil {
		panic(err)
	}
	return counts
}

// MustStmtExecuteQuery calls s.ExecuteQuery and panics on error.
func MustStmtExecuteQuery(s Statement) ResultSet {
	rs, err := s.ExecuteQuery()
	if err != nil {
		panic(err)
	}
	return rs
}

// MustStmtExecuteUpdate calls s.ExecuteUpdate and panics on error.
func MustStmtExecuteUpdate(s Statement) uint64 {
	n, err := s.ExecuteUpdate()
	if err != nil {
		panic(err)
	}
	return n
}

// MustExecute calls s.Execute and panics on error.
func MustExecute(s Statement) bool {
	hasResultSet, err := s.Execute()
	if err != nil {
		panic(err)
	}
	return hasResultSet
}

// MustGetResultSet calls s.GetResultSet and panics on error.
func MustGetResultSet(s Statement) ResultSet {
	rs, err := s.GetResultSet()
	if err != nil {
		panic(err)
	}
	return rs
}

// MustStmtClose calls s.Close and panics on error.
func MustStmtClose(s Statement) {
	if err := s.Close(); err != nil {
		panic(err)
	}
}

// MustNext calls rs.Next and panics on error.
func MustNext(rs ResultSet) bool {
	ok, err := rs.Next()
	if err != nil {
		panic(err)
	}
	return ok
}

// MustGetInt calls rs.GetInt and panics on error.
func MustGetInt(rs ResultSet, col interface{}) int32 {
	v, err := rs.GetInt(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGetLong calls rs.GetLong and panics on error.
func MustGetLong(rs ResultSet, col interface{}) int64 {
	v, err := rs.GetLong(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGetDouble calls rs.GetDouble and panics on error.
func MustGetDouble(rs ResultSet, col interface{}) float64 {
	v, err := rs.GetDouble(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGetString calls rs.GetString and panics on error.
func MustGetString(rs ResultSet, col interface{}) string {
	v, err := rs.GetString(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGetBoolean calls rs.GetBoolean and panics on error.
func MustGetBoolean(rs ResultSet, col interface{}) bool {
	v, err := rs.GetBoolean(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGetBlob calls rs.GetBlob and panics on error.
func MustGetBlob(rs ResultSet, col interface{}) *Blob {
	v, err := rs.GetBlob(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGetBinaryStream calls rs.GetBinaryStream and panics on error.
func MustGetBinaryStream(rs ResultSet, col interface{}) InputStream {
	v, err := rs.GetBinaryStream(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustGetBytes calls rs.GetBytes and panics on error.
func MustGetBytes(rs ResultSet, col interface{}) []byte {
	v, err := rs.GetBytes(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustIsNull calls rs.IsNull and panics on error.
func MustIsNull(rs ResultSet, col interface{}) bool {
	v, err := rs.IsNull(col)
	if err != nil {
		panic(err)
	}
	return v
}

// MustResultSetClose calls rs.Close and panics on error.
func MustResultSetClose(rs ResultSet) {
	if err := rs.Close(); err != nil {
		panic(err)
	}
}
