package httphandler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", renderMarkdown(""))
}

func TestRenderMarkdown_PlainText(t *testing.T) {
	result := renderMarkdown("a project description")
	assert.Contains(t, result, "a project description")
}

func TestRenderMarkdown_GFM(t *testing.T) {
	result := renderMarkdown("**bold** and a [link](https://example.com)")
	assert.Contains(t, result, "<strong>bold</strong>")
	assert.Contains(t, result, `href="https://example.com"`)
}

func TestRenderMarkdown_StripsScriptTags(t *testing.T) {
	result := renderMarkdown("hello <script>alert('xss')</script> world")
	assert.False(t, strings.Contains(result, "<script>"), "script tags must be sanitized, got %q", result)
	assert.Contains(t, result, "hello")
}

func TestRenderMarkdown_StripsInlineEventHandlers(t *testing.T) {
	result := renderMarkdown(`<img src="x.png" onerror="alert(1)">`)
	assert.NotContains(t, result, "onerror")
}
