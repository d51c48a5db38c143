package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_RendersMarkdown(t *testing.T) {
	render := NewRenderer(nil)
	out, err := render("**Married?**")
	require.NoError(t, err)
	assert.Contains(t, out, "Married?")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, 17, "0.1.0")
	assert.True(t, strings.Contains(buf.String(), "v0.1.0 · 17 questions"))
}

func TestIsTerminal_Nil(t *testing.T) {
	assert.False(t, IsTerminal(nil))
}
