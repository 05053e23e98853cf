// Package cppdbc is a JDBC-inspired database abstraction layer providing a
// uniform operational surface across heterogeneous storage backends:
// relational engines (MySQL, PostgreSQL, SQLite, Firebird), the wide-column
// store ScyllaDB, the document store MongoDB, and the key-value store
// Redis. Client code targets the abstract contracts — connections,
// prepared statements, result sets, collections, documents, cursors, and
// key/value operations — and selects a concrete driver by URL scheme.
//
// The three load-bearing subsystems are the driver registry and URL
// dispatch (Registry, ParseURL), the relational connection lifecycle and
// transaction state machine (Connection, BaseConnection), and the
// prepared-statement binding / result-iteration model, including the two
// execution submodels (Statement, ResultSet, StoredResultSet,
// CursorResultSet).
//
// Register a driver once per process and dial through the registry:
//
//	cppdbc.Register(mysql.NewDriver())
//	conn, err := cppdbc.GetConnection(ctx, "cpp_dbc:mysql://db.host:3306/appdb", "app", "secret")
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//	rs, err := conn.ExecuteQuery("SELECT id, name FROM users")
//
// Backend wire protocols are not implemented by this package: every
// concrete driver under drivers/ delegates to an already-linked Go client
// library (go-sql-driver/mysql, jackc/pgx, etc) with equivalent semantics,
// matching the scope cut described in SPEC_FULL.md §1.
package cppdbc
