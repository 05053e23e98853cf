package cppdbc

import (
	"sync"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestStoredResultSetIterationAndBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(int64(1), "alice").
		AddRow(int64(2), "bob")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	sqlRows, err := db.Query("SELECT id, name FROM users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs, err := NewStoredResultSet(sqlRows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !rs.IsBeforeFirst() {
		t.Fatalf("expected IsBeforeFirst before any Next call")
	}

	ok, err := rs.Next()
	if err != nil || !ok {
		t.Fatalf("expected first Next to succeed, got ok=%v err=%v", ok, err)
	}
	name, err := rs.GetString("name")
	if err != nil || name != "alice" {
		t.Fatalf("got name=%q err=%v, want alice", name, err)
	}

	ok, err = rs.Next()
	if err != nil || !ok {
		t.Fatalf("expected second Next to succeed, got ok=%v err=%v", ok, err)
	}

	ok, err = rs.Next()
	if err != nil || ok {
		t.Fatalf("expected Next past the last row to return false, got ok=%v err=%v", ok, err)
	}
	if !rs.IsAfterLast() {
		t.Fatalf("expected IsAfterLast once iteration is exhausted")
	}
	if _, err := rs.GetString("name"); err == nil {
		t.Fatalf("expected error reading a column after exhaustion")
	}
}

func TestStoredResultSetUnknownColumnErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	sqlRows, _ := db.Query("SELECT id FROM t")
	rs, err := NewStoredResultSet(sqlRows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs.Next()
	_, err = rs.GetString("missing")
	if err == nil {
		t.Fatalf("expected error for unknown column name")
	}
	dbErr, ok := err.(*DBError)
	if !ok || dbErr.Code != CodeColumnNotFound {
		t.Fatalf("expected CodeColumnNotFound, got %v", err)
	}
}

func TestCursorResultSetCloseDuringIterate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)),
	)
	sqlRows, err := db.Query("SELECT id FROM t")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var mu sync.Mutex
	closed := false
	rs, err := NewCursorResultSet(&mu, sqlRows, func() bool { return closed })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ok, err := rs.Next()
	if err != nil || !ok {
		t.Fatalf("expected first Next to succeed, got ok=%v err=%v", ok, err)
	}
	if err := rs.Close(); err != nil {
		t.Fatalf("unexpected error closing: %v", err)
	}
	if _, err := rs.Next(); err == nil {
		t.Fatalf("expected Next after Close to fail")
	}
}
