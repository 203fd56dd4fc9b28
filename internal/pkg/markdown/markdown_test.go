package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	html, err := Render("# Heading\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Heading</h1>")
	assert.Contains(t, html, "<strong>bold</strong>")
}

func TestRender_GFMTable(t *testing.T) {
	html, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, html, "<table>")
}

func TestRender_Strikethrough(t *testing.T) {
	html, err := Render("~~gone~~")
	require.NoError(t, err)
	assert.Contains(t, html, "<del>gone</del>")
}

func TestRender_AutoLink(t *testing.T) {
	html, err := Render("see https://example.com for more")
	require.NoError(t, err)
	assert.Contains(t, html, `<a href="https://example.com"`)
}

func TestRender_Empty(t *testing.T) {
	html, err := Render("")
	require.NoError(t, err)
	assert.Empty(t, html)
}
