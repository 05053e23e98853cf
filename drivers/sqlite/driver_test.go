package sqlite

import (
	"testing"

	"cpp_dbc"
)

func TestDriverAcceptsOwnSchemeOnly(t *testing.T) {
	d := NewDriver()
	if !d.Accepts(&cppdbc.ParsedURL{Scheme: "sqlite"}) {
		t.Fatalf("expected driver to accept its own scheme")
	}
	if d.Accepts(&cppdbc.ParsedURL{Scheme: "firebird"}) {
		t.Fatalf("expected driver to reject a foreign scheme")
	}
}

func TestRawURLUsesDatabasePathVerbatim(t *testing.T) {
	u := &cppdbc.ParsedURL{Scheme: "sqlite", Database: "/var/lib/app/state.db"}
	got := rawURL(u)
	want := "cpp_dbc:sqlite:///var/lib/app/state.db"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
