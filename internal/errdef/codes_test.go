package errdef

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCodeOfWalksWrapChain(t *testing.T) {
	err := NewBackendUnavailable("ping failed", errors.New("connection refused"))
	wrapped := errors.Wrap(err, "health probe")

	require.Equal(t, ErrCodeBackendUnavailable, CodeOf(wrapped))
	require.Contains(t, wrapped.Error(), "connection refused")
}

func TestCodeOfPlainError(t *testing.T) {
	require.Equal(t, ErrorCode(""), CodeOf(errors.New("boom")))
	require.False(t, IsNotFound(errors.New("boom")))
}

func TestIsNotFound(t *testing.T) {
	require.True(t, IsNotFound(NewNotFound("bookmark 42")))
	require.False(t, IsNotFound(NewConflict("bookmark exists")))
}
