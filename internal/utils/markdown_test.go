package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("some **bold** text")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := RenderMarkdown(`hello <script>alert("xss")</script> world`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}
