package scylladb

import (
	"testing"

	"cpp_dbc"
)

func TestDriverAcceptsOwnSchemeOnly(t *testing.T) {
	d := NewDriver()
	if !d.Accepts(&cppdbc.ParsedURL{Scheme: "scylladb"}) {
		t.Fatalf("expected driver to accept its own scheme")
	}
	if d.Accepts(&cppdbc.ParsedURL{Scheme: "mongodb"}) {
		t.Fatalf("expected driver to reject a foreign scheme")
	}
}

func TestRawURL(t *testing.T) {
	u := &cppdbc.ParsedURL{Scheme: "scylladb", Host: "node1", Database: "ks"}
	got := rawURL(u)
	want := "cpp_dbc:scylladb://node1/ks"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
