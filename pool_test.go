package cppdbc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newPoolFakeConnection() *fakeConnection {
	return &fakeConnection{BaseConnection: NewBaseConnection("cpp_dbc:fake://host/db", ReadCommitted, true)}
}

func TestSimplePoolBorrowReturnRecyclesIdleConnection(t *testing.T) {
	var created int
	p := NewSimplePool(PoolConfig{MaxOpen: 2, MaxIdle: 2}, func(ctx context.Context) (Connection, error) {
		created++
		return newPoolFakeConnection(), nil
	})

	c1, err := p.Borrow(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Return(c1))
	c2, err := p.Borrow(context.Background())
	require.NoError(t, err)
	require.Same(t, c1, c2, "expected the returned connection to be recycled")
	require.Equal(t, 1, created, "expected exactly one connection to be created")
}

func TestSimplePoolExhaustion(t *testing.T) {
	p := NewSimplePool(PoolConfig{MaxOpen: 1}, func(ctx context.Context) (Connection, error) {
		return newPoolFakeConnection(), nil
	})
	_, err := p.Borrow(context.Background())
	require.NoError(t, err)
	_, err = p.Borrow(context.Background())
	require.Error(t, err, "expected pool exhaustion error on second borrow")
}

func TestSimplePoolReturnWithActiveTransactionRollsBackAndRecycles(t *testing.T) {
	p := NewSimplePool(PoolConfig{MaxOpen: 1, MaxIdle: 1}, func(ctx context.Context) (Connection, error) {
		return newPoolFakeConnection(), nil
	})
	c, err := p.Borrow(context.Background())
	require.NoError(t, err)
	_, err = c.BeginTransaction()
	require.NoError(t, err)
	require.NoError(t, p.Return(c))
	require.False(t, c.TransactionActive(), "expected pool return to roll back the active transaction")
	require.False(t, c.IsClosed(), "expected the connection to remain open and recycled, not closed")
}

func TestSimplePoolCloseClosesIdleConnections(t *testing.T) {
	p := NewSimplePool(PoolConfig{MaxOpen: 1, MaxIdle: 1}, func(ctx context.Context) (Connection, error) {
		return newPoolFakeConnection(), nil
	})
	c, _ := p.Borrow(context.Background())
	p.Return(c)
	require.NoError(t, p.Close())
	require.True(t, c.IsClosed(), "expected idle connection to be closed by pool Close")
	_, err := p.Borrow(context.Background())
	require.Error(t, err, "expected Borrow on a closed pool to error")
}
