package cppdbc

import "testing"

func TestBaseStatementBindTableSizing(t *testing.T) {
	owner := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	s := NewBaseStatement(owner, "SELECT * FROM t WHERE a = ? AND b = ?", 2, nil)
	if s.ParamCount() != 2 {
		t.Fatalf("got param count %d, want 2", s.ParamCount())
	}
}

func TestSnapshotRejectsUnboundSlot(t *testing.T) {
	owner := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	s := NewBaseStatement(owner, "INSERT INTO t VALUES (?, ?)", 2, nil)
	if err := s.Set(1, TypeInteger, int32(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Snapshot(); err == nil {
		t.Fatalf("expected Snapshot to reject with parameter 2 unbound")
	}
}

func TestSnapshotSucceedsWhenAllSlotsBound(t *testing.T) {
	owner := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	s := NewBaseStatement(owner, "INSERT INTO t VALUES (?, ?)", 2, nil)
	if err := s.Set(1, TypeInteger, int32(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetNullSlot(2, TypeVarchar); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	binds, err := s.Snapshot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	args, err := ToDriverArgs(binds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if args[0] != int32(7) || args[1] != nil {
		t.Fatalf("unexpected driver args: %+v", args)
	}
}

func TestBindIndexOutOfRange(t *testing.T) {
	owner := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	s := NewBaseStatement(owner, "SELECT 1", 1, nil)
	if err := s.Set(0, TypeInteger, int32(1)); err == nil {
		t.Fatalf("expected error for index 0")
	}
	if err := s.Set(2, TypeInteger, int32(1)); err == nil {
		t.Fatalf("expected error for index past paramCount")
	}
}

func TestCheckOpenFailsAfterStatementClose(t *testing.T) {
	owner := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	s := NewBaseStatement(owner, "SELECT 1", 0, nil)
	if err := s.CheckOpen(); err != nil {
		t.Fatalf("unexpected error before close: %v", err)
	}
	if err := s.Close(nil); err != nil {
		t.Fatalf("unexpected error closing: %v", err)
	}
	if err := s.CheckOpen(); err == nil {
		t.Fatalf("expected CheckOpen to fail after Close")
	}
}

func TestCheckOpenFailsAfterOwningConnectionClose(t *testing.T) {
	owner := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	s := NewBaseStatement(owner, "SELECT 1", 0, nil)
	owner.Mu.Lock()
	owner.TeardownLocked()
	owner.CloseLocked()
	owner.Mu.Unlock()
	if err := s.CheckOpen(); err == nil {
		t.Fatalf("expected CheckOpen to fail once the owning connection is closed")
	}
}

func TestAddBatchAccumulatesAndClears(t *testing.T) {
	owner := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	s := NewBaseStatement(owner, "INSERT INTO t VALUES (?)", 1, nil)
	for i := int32(0); i < 3; i++ {
		if err := s.Set(1, TypeInteger, i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.AddBatch(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	batch := s.TakeBatch()
	if len(batch) != 3 {
		t.Fatalf("got batch length %d, want 3", len(batch))
	}
	if len(s.TakeBatch()) != 0 {
		t.Fatalf("expected TakeBatch to clear the accumulator")
	}
}
