package mongodb

import (
	"testing"

	"cpp_dbc"
)

func TestDriverAcceptsOwnSchemeOnly(t *testing.T) {
	d := NewDriver()
	if !d.Accepts(&cppdbc.ParsedURL{Scheme: "mongodb"}) {
		t.Fatalf("expected driver to accept its own scheme")
	}
	if d.Accepts(&cppdbc.ParsedURL{Scheme: "redis"}) {
		t.Fatalf("expected driver to reject a foreign scheme")
	}
}

func TestRawURL(t *testing.T) {
	u := &cppdbc.ParsedURL{Scheme: "mongodb", Host: "db.host", Port: "27017", Database: "appdb"}
	got := rawURL(u)
	want := "cpp_dbc:mongodb://db.host:27017/appdb"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecodeFilterEmptyStringYieldsEmptyMatcher(t *testing.T) {
	m, err := decodeFilter("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty filter to decode to an empty matcher, got %+v", m)
	}
}

func TestDecodeFilterInvalidJSONErrors(t *testing.T) {
	if _, err := decodeFilter("{not json"); err == nil {
		t.Fatalf("expected error for invalid filter JSON")
	}
}

func TestDecodeFilterRoundTrip(t *testing.T) {
	m, err := decodeFilter(`{"name": "alice"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["name"] != "alice" {
		t.Fatalf("got %+v", m)
	}
}
