package observability

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRequestContextGeneratesID(t *testing.T) {
	a := NewRequestContext(discardLogger())
	b := NewRequestContext(discardLogger())
	require.NotEmpty(t, a.RequestID)
	require.NotEqual(t, a.RequestID, b.RequestID)
}
