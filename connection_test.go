package cppdbc

import "testing"

func TestBaseConnectionStartsInAutoCommitNoTxn(t *testing.T) {
	c := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	if !c.GetAutoCommit() {
		t.Fatalf("expected autocommit=on by default")
	}
	if c.TransactionActive() {
		t.Fatalf("expected no active transaction by default")
	}
	if c.GetTransactionIsolation() != ReadCommitted {
		t.Fatalf("expected reported default isolation to be ReadCommitted")
	}
}

func TestBeginTransactionIsIdempotentWhileActive(t *testing.T) {
	c := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	isNew, err := c.BeginTransactionLocked()
	if err != nil || !isNew {
		t.Fatalf("expected first begin to report isNew=true, got isNew=%v err=%v", isNew, err)
	}
	isNew, err = c.BeginTransactionLocked()
	if err != nil || isNew {
		t.Fatalf("expected second begin to report isNew=false, got isNew=%v err=%v", isNew, err)
	}
}

func TestCommitWithNoActiveTransactionErrors(t *testing.T) {
	c := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	if err := c.CommitLocked(); err == nil {
		t.Fatalf("expected commit with no active transaction to error")
	}
}

func TestSetAutoCommitOnImpliesCommitWhileTxnActive(t *testing.T) {
	c := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	if _, err := c.SetAutoCommitLocked(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.BeginTransactionLocked(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	impliedCommit, err := c.SetAutoCommitLocked(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !impliedCommit {
		t.Fatalf("expected an implied commit when enabling autocommit mid-transaction")
	}
	if c.TransactionActive() {
		t.Fatalf("expected transaction to be closed after implied commit")
	}
}

func TestOperationsAfterCloseFail(t *testing.T) {
	c := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	c.TeardownLocked()
	c.CloseLocked()
	if !c.IsClosed() {
		t.Fatalf("expected connection to report closed")
	}
	if _, err := c.BeginTransactionLocked(); err == nil {
		t.Fatalf("expected BeginTransaction on a closed connection to error")
	}
}

func TestResetForPoolReturnRestoresPoolDefaults(t *testing.T) {
	c := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, true)
	c.SetPoolDefaults(Serializable, true)
	if _, err := c.SetAutoCommitLocked(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.SetTransactionIsolationLocked(ReadUncommitted, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.ResetForPoolReturnLocked()
	if !c.GetAutoCommit() {
		t.Fatalf("expected autocommit restored to pool default (true)")
	}
	if c.GetTransactionIsolation() != Serializable {
		t.Fatalf("expected isolation restored to pool default (Serializable)")
	}
	if c.IsLentOut() {
		t.Fatalf("expected lentOut cleared on pool return")
	}
}

func TestTeardownLockedClosesRegisteredStatements(t *testing.T) {
	c := NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, false)
	closed := false
	h := &StatementHandle{closer: func() { closed = true }}
	c.RegisterStatement(h)

	wasActive := c.TeardownLocked()
	if wasActive {
		t.Fatalf("expected wasActive=false, no transaction was started")
	}
	if !closed {
		t.Fatalf("expected teardown to close the registered statement")
	}
}
