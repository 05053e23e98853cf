package cppdbc

import (
	"sync"
)

// Connection is the relational connection contract of spec.md §4.3/§6.
// Every relational and columnar driver (MySQL, PostgreSQL, SQLite,
// Firebird, ScyllaDB) returns a value implementing this interface.
type Connection interface {
	PrepareStatement(sql string) (Statement, error)
	ExecuteQuery(sql string) (ResultSet, error)
	ExecuteUpdate(sql string) (uint64, error)

	SetAutoCommit(on bool) error
	GetAutoCommit() bool

	BeginTransaction() (bool, error)
	TransactionActive() bool

	Commit() error
	Rollback() error

	SetTransactionIsolation(level IsolationLevel) error
	GetTransactionIsolation() IsolationLevel

	Close() error
	IsClosed() bool
	ReturnToPool() error
	IsPooled() bool

	GetURL() string
}

// StatementHandle is the registry key a connection uses to track live
// statements it has issued (spec.md §5, "statement registry").
// NewBaseStatement creates one per statement, keeps a pointer to it
// (Handle()) and adds it to the registry.
type StatementHandle struct {
	// closer is invoked by the connection's teardown path to force-close
	// a still-live statement before the connection itself tears down.
	closer func()
}

// BaseConnection implements the transaction state machine and statement
// registry shared by every relational/columnar backend (spec.md §4.3,
// §5). Concrete drivers embed it and call its bookkeeping methods from
// their own Connection method implementations, issuing the
// backend-specific SQL/driver call around each one — mirroring the
// Core/DB split in the teacher package, where Core carries the shared
// state machine and the concrete driver supplies backend specifics.
type BaseConnection struct {
	Mu sync.Mutex

	url        string
	closed     bool
	autoCommit bool
	txnActive  bool
	isolation  IsolationLevel

	pooled  bool
	lentOut bool

	poolDefaultIsolation  IsolationLevel
	poolDefaultAutoCommit bool

	statements map[*StatementHandle]struct{}
}

// NewBaseConnection initializes a BaseConnection in the OPEN/autocommit=on/
// NO_TXN state with the given reported default isolation level (spec.md
// §4.3: "implementations must report the backend's actual default via
// getTransactionIsolation() immediately after connect").
func NewBaseConnection(url string, defaultIsolation IsolationLevel, pooled bool) *BaseConnection {
	return &BaseConnection{
		url:                   url,
		autoCommit:            true,
		isolation:             defaultIsolation,
		pooled:                pooled,
		lentOut:               pooled,
		poolDefaultIsolation:  defaultIsolation,
		poolDefaultAutoCommit: true,
		statements:            make(map[*StatementHandle]struct{}),
	}
}

// GetURL returns the URL used to create this connection.
func (c *BaseConnection) GetURL() string { return c.url }

// IsClosed reports whether Close has been called. Safe to call
// concurrently: it takes Mu, so callers that already hold Mu use
// IsClosedLocked instead.
func (c *BaseConnection) IsClosed() bool {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.closed
}

// IsPooled reports whether this connection belongs to a pool.
func (c *BaseConnection) IsPooled() bool {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.pooled
}

// GetAutoCommit returns the last value set via SetAutoCommit, regardless
// of transaction state (spec.md §4.3 invariant).
func (c *BaseConnection) GetAutoCommit() bool {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.autoCommit
}

// TransactionActive returns true exactly when the state is TXN_ACTIVE.
func (c *BaseConnection) TransactionActive() bool {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.txnActive
}

// GetTransactionIsolation returns the currently configured isolation
// level.
func (c *BaseConnection) GetTransactionIsolation() IsolationLevel {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.isolation
}

// checkOpenLocked returns ConnectionClosed if the connection is closed.
// Caller must hold Mu.
func (c *BaseConnection) checkOpenLocked() error {
	if c.closed {
		return ErrConnectionClosed
	}
	return nil
}

// CheckOpenLocked is the exported form of checkOpenLocked for concrete
// drivers that already hold Mu and must not re-enter IsClosed's own
// locking (Go's sync.Mutex is not reentrant, unlike the recursive mutex
// the original C++ uses — spec.md §9's note on recursive locks applies
// here: callers pass the already-held guard through instead of
// re-acquiring it).
func (c *BaseConnection) CheckOpenLocked() error { return c.checkOpenLocked() }

// IsClosedLocked is the non-locking form of IsClosed for callers that
// already hold Mu.
func (c *BaseConnection) IsClosedLocked() bool { return c.closed }

// BeginTransactionLocked checks that the connection is open and performs
// the NO_TXN -> TXN_ACTIVE bookkeeping transition; the autocommit flag is
// not consulted. Caller must hold Mu and issue the backend BEGIN
// statement itself; isNew tells the caller
// whether a transaction was actually (newly) started, matching
// Connection.BeginTransaction's documented return value.
func (c *BaseConnection) BeginTransactionLocked() (isNew bool, err error) {
	if err := c.checkOpenLocked(); err != nil {
		return false, err
	}
	if c.txnActive {
		return false, nil
	}
	c.txnActive = true
	return true, nil
}

// NoteImplicitBeginLocked records that a data statement implicitly started
// a transaction (Firebird's autocommit-off-first-statement rule, spec.md
// §4.3/§9). Caller must hold Mu.
func (c *BaseConnection) NoteImplicitBeginLocked() {
	if !c.autoCommit && !c.txnActive {
		c.txnActive = true
	}
}

// GetAutoCommitLocked is GetAutoCommit for callers that already hold Mu
// (Go's sync.Mutex is not reentrant, so GetAutoCommit itself would
// deadlock here).
func (c *BaseConnection) GetAutoCommitLocked() bool { return c.autoCommit }

// TransactionActiveLocked is TransactionActive for callers that already
// hold Mu.
func (c *BaseConnection) TransactionActiveLocked() bool { return c.txnActive }

// CommitLocked performs the TXN_ACTIVE -> NO_TXN bookkeeping transition.
// Caller must hold Mu and issue the backend COMMIT itself before calling
// this (or after — see each driver for the exact ordering it uses).
func (c *BaseConnection) CommitLocked() error {
	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	if !c.txnActive {
		return WrapError(CodeTransactionError, nil, "commit with no active transaction")
	}
	c.txnActive = false
	return nil
}

// RollbackLocked performs the TXN_ACTIVE -> NO_TXN bookkeeping transition
// for a rollback. Unlike CommitLocked it is tolerant of being called when
// no transaction is active (teardown paths call it unconditionally).
func (c *BaseConnection) RollbackLocked() error {
	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	c.txnActive = false
	return nil
}

// SetAutoCommitLocked performs the bookkeeping half of setAutoCommit: an
// on->off transition while NO_TXN is a no-op beyond flipping the flag; an
// off->on transition while TXN_ACTIVE implies a commit, which the caller
// must issue to the backend (impliedCommit tells it to). Caller must hold
// Mu.
func (c *BaseConnection) SetAutoCommitLocked(on bool) (impliedCommit bool, err error) {
	if err := c.checkOpenLocked(); err != nil {
		return false, err
	}
	if on && c.txnActive {
		impliedCommit = true
		c.txnActive = false
	}
	c.autoCommit = on
	return impliedCommit, nil
}

// SetTransactionIsolationLocked validates and records a new isolation
// level. rejectMidTxn lets a backend that forbids a mid-transaction
// isolation change (spec.md §4.3) enforce that here.
func (c *BaseConnection) SetTransactionIsolationLocked(level IsolationLevel, rejectMidTxn bool) error {
	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	if rejectMidTxn && c.txnActive {
		return WrapError(CodeTransactionError, nil, "cannot change isolation level mid-transaction")
	}
	c.isolation = level
	return nil
}

// RegisterStatement adds a statement to the live-statement registry so
// teardown can find and close it later (spec.md §5).
func (c *BaseConnection) RegisterStatement(h *StatementHandle) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.statements[h] = struct{}{}
}

// UnregisterStatement removes a statement from the registry; called by a
// statement's own Close so an explicitly-closed statement does not linger
// until connection teardown (documented divergence from the original's
// weak_ptr set — see DESIGN.md).
func (c *BaseConnection) UnregisterStatement(h *StatementHandle) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	delete(c.statements, h)
}

// TeardownLocked implements spec.md §5's mandatory teardown sequence:
// clear the transaction flag (reporting through wasActive whether the
// caller must issue a backend ROLLBACK), close every live statement and
// clear the registry. It does not mark the connection closed; Close paths
// call CloseLocked afterwards. Caller must hold Mu already (teardown itself
// needs the lock that statement Close would also need, which is exactly
// why the registry's closer callbacks must not attempt to re-acquire Mu
// themselves).
func (c *BaseConnection) TeardownLocked() (wasActive bool) {
	wasActive = c.txnActive
	c.txnActive = false
	for h := range c.statements {
		if h.closer != nil {
			h.closer()
		}
		delete(c.statements, h)
	}
	return wasActive
}

// CloseLocked marks the connection closed. Caller must hold Mu and must
// have already called TeardownLocked.
func (c *BaseConnection) CloseLocked() {
	c.closed = true
	c.lentOut = false
}

// ResetForPoolReturnLocked resets autocommit/isolation to the pool's
// configured defaults and flips lentOut to false (spec.md §4.3: "Returning
// a connection to its pool ... reset isolation and autocommit to pool
// defaults, flip the lent-out flag to resident"). Caller must hold Mu.
func (c *BaseConnection) ResetForPoolReturnLocked() {
	c.autoCommit = c.poolDefaultAutoCommit
	c.isolation = c.poolDefaultIsolation
	c.lentOut = false
}

// MarkLentOutLocked flips the lent-out flag when a pool hands this
// connection to a borrower. Caller must hold Mu.
func (c *BaseConnection) MarkLentOutLocked() {
	c.lentOut = true
}

// MarkLentOut is the unlocked-caller convenience wrapper a Pool uses when
// handing an idle connection back out to a borrower.
func (c *BaseConnection) MarkLentOut() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.lentOut = true
}

// IsLentOut reports whether a pool currently has this connection on loan.
func (c *BaseConnection) IsLentOut() bool {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	return c.lentOut
}

// SetPoolDefaults configures the isolation/autocommit state a pooled
// connection resets to on ReturnToPool.
func (c *BaseConnection) SetPoolDefaults(isolation IsolationLevel, autoCommit bool) {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.poolDefaultIsolation = isolation
	c.poolDefaultAutoCommit = autoCommit
}
