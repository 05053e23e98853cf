package firebird

import (
	"testing"

	"cpp_dbc"
)

func TestDriverAcceptsOwnSchemeOnly(t *testing.T) {
	d := NewDriver()
	if !d.Accepts(&cppdbc.ParsedURL{Scheme: "firebird"}) {
		t.Fatalf("expected driver to accept its own scheme")
	}
	if d.Accepts(&cppdbc.ParsedURL{Scheme: "sqlite"}) {
		t.Fatalf("expected driver to reject a foreign scheme")
	}
}

func TestIsolationSQLMapping(t *testing.T) {
	cases := map[cppdbc.IsolationLevel]string{
		cppdbc.ReadCommitted: "READ COMMITTED",
		cppdbc.Serializable:  "ISOLATION LEVEL SERIALIZABLE",
	}
	for level, want := range cases {
		if got := isolationSQL(level); got != want {
			t.Errorf("isolationSQL(%v) = %q, want %q", level, got, want)
		}
	}
}

func TestRawURLIncludesFullPath(t *testing.T) {
	u := &cppdbc.ParsedURL{Scheme: "firebird", Host: "host", Port: "3050", Database: "/var/lib/firebird/data/db.fdb"}
	got := rawURL(u)
	want := "cpp_dbc:firebird://host:3050/var/lib/firebird/data/db.fdb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
