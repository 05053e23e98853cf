package cppdbc

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Pool is the connection-pool collaborator contract named by spec.md §2
// (L4) and §4.3/§5 (pool-return semantics). cpp_dbc's core depends on
// Pool only through this interface; a full pool implementation (health
// checks, eviction policies, multi-backend sharding) is out of scope,
// matching spec.md §1's "does not perform connection multiplexing across
// sessions".
type Pool interface {
	Borrow(ctx context.Context) (Connection, error)
	Return(c Connection) error
	Close() error
	Stats() PoolStats
}

// PoolStats reports point-in-time pool occupancy.
type PoolStats struct {
	Open   int
	InUse  int
	Idle   int
}

// PoolConfig mirrors the teacher's ConfigNode pool knobs
// (MaxIdleConnCount/MaxOpenConnCount/MaxConnLifetime) and the original's
// benchmark_common.hpp pool configuration struct (max size, idle timeout,
// validation query) — see DESIGN.md.
type PoolConfig struct {
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
	ValidationSQL   string

	DefaultIsolation  IsolationLevel
	DefaultAutoCommit bool
}

// SimplePool is a reference connection pool grounded on the teacher's
// getSqlDb caching/limit pattern (gdb_core.go), adapted from wrapping a
// single *sql.DB to managing a bounded set of cpp_dbc Connections created
// by a factory (typically a RelationalDriver.Connect closure). It exists
// to exercise the Pool contract end to end; production pooling policy is
// a collaborator concern per spec.md §1.
type SimplePool struct {
	mu      sync.Mutex
	cfg     PoolConfig
	factory func(ctx context.Context) (Connection, error)

	idle    []Connection
	inUse   map[Connection]struct{}
	pending int
	closed  bool
}

// NewSimplePool builds a pool that creates connections on demand via
// factory, up to cfg.MaxOpen concurrently outstanding, keeping at most
// cfg.MaxIdle idle connections around between borrows.
func NewSimplePool(cfg PoolConfig, factory func(ctx context.Context) (Connection, error)) *SimplePool {
	return &SimplePool{cfg: cfg, factory: factory, inUse: make(map[Connection]struct{})}
}

// Borrow returns an idle connection if one is available, else creates a
// new one via the factory (subject to MaxOpen), and marks it on loan.
func (p *SimplePool) Borrow(ctx context.Context) (Connection, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, WrapError(CodeConnectionFailure, ErrPoolClosed, "pool is closed")
	}
	if n := len(p.idle); n > 0 {
		c := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.inUse[c] = struct{}{}
		p.mu.Unlock()
		if bc, ok := c.(interface{ MarkLentOut() }); ok {
			bc.MarkLentOut()
		}
		return c, nil
	}
	if p.cfg.MaxOpen > 0 && len(p.inUse)+p.pending >= p.cfg.MaxOpen {
		p.mu.Unlock()
		return nil, WrapError(CodeConnectionFailure, nil, "pool exhausted: %d connections in use", p.cfg.MaxOpen)
	}
	// Reserve the slot before releasing the lock so a second concurrent
	// Borrow sees it accounted for and cannot also slip past MaxOpen while
	// factory (which may block on I/O) is still running.
	p.pending++
	p.mu.Unlock()

	c, err := p.factory(ctx)
	p.mu.Lock()
	p.pending--
	if err != nil {
		p.mu.Unlock()
		return nil, err
	}
	p.inUse[c] = struct{}{}
	p.mu.Unlock()
	return c, nil
}

// Return implements spec.md §4.3's pool-return semantics: rollback if
// active, finalise statements, reset defaults (delegated to the
// connection's own ReturnToPool), and force CLOSED on any failure
// (spec.md §7: "Pool-return errors ... force the connection into CLOSED
// state instead of returning to the pool").
func (p *SimplePool) Return(c Connection) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inUse, c)
	if p.closed {
		return c.Close()
	}
	if err := c.ReturnToPool(); err != nil {
		_ = c.Close()
		return err
	}
	if c.IsClosed() {
		return nil
	}
	if p.cfg.MaxIdle > 0 && len(p.idle) >= p.cfg.MaxIdle {
		return c.Close()
	}
	p.idle = append(p.idle, c)
	return nil
}

// Close closes every idle connection and marks the pool closed; any
// connection still on loan is closed when its borrower calls Return.
func (p *SimplePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	var firstErr error
	for _, c := range p.idle {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.idle = nil
	return firstErr
}

// Stats reports point-in-time occupancy.
func (p *SimplePool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PoolStats{
		Open:  len(p.idle) + len(p.inUse),
		InUse: len(p.inUse),
		Idle:  len(p.idle),
	}
}

// ErrPoolClosed is the cause wrapped into the error Borrow returns once
// the pool has been closed (Return on a closed pool just closes the
// connection); exported so callers can errors.Is against it directly in
// addition to matching on DBError codes.
var ErrPoolClosed = errors.New("cppdbc: pool closed")
