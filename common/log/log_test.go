package log

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "analyzer-test", "info")
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, "", "info") })

	Debug("hidden %d", 1)
	Info("shanten %d", 2)
	Warn("plain")
	With("request_id", "abc").Info("http")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shanten 2")
	assert.Contains(t, out, "plain")
	assert.Contains(t, out, "analyzer-test")
	assert.Contains(t, out, "request_id=abc")
}
