package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPage(t *testing.T) {
	page := renderPage("play.example.com", "2222")
	assert.Contains(t, page, "ssh -t -p 2222 play.example.com")
	assert.NotContains(t, page, "{{.SSHHost}}")

	assert.Contains(t, renderPage("play.example.com", "22"), "ssh -t play.example.com</code>")
}
