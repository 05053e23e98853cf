package mysql

import (
	"testing"

	"cpp_dbc"
)

func TestIsolationSQLMapping(t *testing.T) {
	cases := map[cppdbc.IsolationLevel]string{
		cppdbc.ReadUncommitted: "READ UNCOMMITTED",
		cppdbc.ReadCommitted:   "READ COMMITTED",
		cppdbc.RepeatableRead:  "REPEATABLE READ",
		cppdbc.Serializable:    "SERIALIZABLE",
	}
	for level, want := range cases {
		if got := isolationSQL(level); got != want {
			t.Errorf("isolationSQL(%v) = %q, want %q", level, got, want)
		}
	}
}

func TestDriverAcceptsOwnSchemeOnly(t *testing.T) {
	d := NewDriver()
	if !d.Accepts(&cppdbc.ParsedURL{Scheme: "mysql"}) {
		t.Fatalf("expected driver to accept its own scheme")
	}
	if d.Accepts(&cppdbc.ParsedURL{Scheme: "postgresql"}) {
		t.Fatalf("expected driver to reject a foreign scheme")
	}
}
