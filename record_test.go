package cppdbc

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

type userRecord struct {
	Id   int64
	Name string
}

func TestScanStructMapsRowByFieldName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(42), "grace"),
	)
	sqlRows, err := db.Query("SELECT id, name FROM users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs, err := NewStoredResultSet(sqlRows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, err := rs.Next(); err != nil || !ok {
		t.Fatalf("expected a row, got ok=%v err=%v", ok, err)
	}
	var u userRecord
	if err := ScanStruct(rs, &u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Id != 42 || u.Name != "grace" {
		t.Fatalf("got %+v", u)
	}
}

func TestScanStructsDrainsAllRemainingRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "alice").
			AddRow(int64(2), "bob"),
	)
	sqlRows, err := db.Query("SELECT id, name FROM users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs, err := NewStoredResultSet(sqlRows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var users []userRecord
	if err := ScanStructs(rs, &users); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 || users[0].Name != "alice" || users[1].Name != "bob" {
		t.Fatalf("got %+v", users)
	}
}
