package cppdbc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBErrorIsMatchesByCode(t *testing.T) {
	err := WrapError(CodeConnectionClosed, errors.New("boom"), "connection already closed")
	assert.True(t, errors.Is(err, ErrConnectionClosed), "expected errors.Is to match ErrConnectionClosed by code")
	assert.False(t, errors.Is(err, ErrSqlError), "did not expect errors.Is to match a different code")
}

func TestDBErrorUnwrapReachesCause(t *testing.T) {
	cause := errors.New("underlying driver failure")
	err := WrapError(CodeSqlError, cause, "executing query")
	require.ErrorIs(t, err, cause, "expected errors.Is to reach the wrapped cause")
}

func TestNewErrorHasNoCause(t *testing.T) {
	err := NewError(CodeParameterError, "parameter %d was never bound", 3)
	require.Nil(t, err.Unwrap(), "expected NewError to carry no cause")
	assert.Equal(t, CodeParameterError, err.Code)
}
