package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderBasic(t *testing.T) {
	svc := NewService()
	out, err := svc.Render("some `code` and **bold**")
	require.NoError(t, err)
	require.Contains(t, out, "<code>code</code>")
	require.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderEscapesRawHTML(t *testing.T) {
	svc := NewService()
	out, err := svc.Render("<script>alert(1)</script>")
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
}

func TestRenderAutolink(t *testing.T) {
	svc := NewService()
	out, err := svc.Render("see https://example.com/a")
	require.NoError(t, err)
	require.Contains(t, out, `<a href="https://example.com/a"`)
}
