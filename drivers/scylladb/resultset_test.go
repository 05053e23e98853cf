package scylladb

import "testing"

func TestResultSetColumnNameResolvesPositionalAndNamed(t *testing.T) {
	rs := &ResultSet{
		columns: []string{"id", "name"},
		rows: []map[string]interface{}{
			{"id": int64(1), "name": "alice"},
		},
	}
	if _, err := rs.Next(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := rs.GetLong("id")
	if err != nil || v != 1 {
		t.Fatalf("got v=%d err=%v", v, err)
	}
	s, err := rs.GetString(2)
	if err != nil || s != "alice" {
		t.Fatalf("got s=%q err=%v", s, err)
	}
}

func TestResultSetExhaustionReturnsError(t *testing.T) {
	rs := &ResultSet{columns: []string{"id"}, rows: []map[string]interface{}{{"id": int64(1)}}}
	rs.Next()
	rs.Next()
	if _, err := rs.GetLong("id"); err == nil {
		t.Fatalf("expected error once exhausted")
	}
}
