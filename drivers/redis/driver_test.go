package redis

import (
	"testing"

	"cpp_dbc"
)

func TestDriverAcceptsOwnSchemeOnly(t *testing.T) {
	d := NewDriver()
	if !d.Accepts(&cppdbc.ParsedURL{Scheme: "redis"}) {
		t.Fatalf("expected driver to accept its own scheme")
	}
	if d.Accepts(&cppdbc.ParsedURL{Scheme: "mongodb"}) {
		t.Fatalf("expected driver to reject a foreign scheme")
	}
}

func TestRawURL(t *testing.T) {
	u := &cppdbc.ParsedURL{Scheme: "redis", Host: "cache.host", Port: "6379", Database: "0"}
	got := rawURL(u)
	want := "cpp_dbc:redis://cache.host:6379/0"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
