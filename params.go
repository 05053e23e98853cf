package cppdbc

// ToDriverArgs converts a snapshot of a prepared statement's bind table
// into positional arguments suitable for database/sql's Exec/Query
// (used by every statement-bearing driver: MySQL, PostgreSQL, SQLite and
// Firebird hand them to database/sql, ScyllaDB to gocql — spec.md §1
// treats the wire protocol as an already-linked external collaborator).
func ToDriverArgs(binds []bindSlot) ([]interface{}, error) {
	args := make([]interface{}, len(binds))
	for i, b := range binds {
		if b.null {
			args[i] = nil
			continue
		}
		switch v := b.value.(type) {
		case *Blob:
			raw, err := v.Bytes()
			if err != nil {
				return nil, err
			}
			args[i] = raw
		default:
			args[i] = v
		}
	}
	return args, nil
}
