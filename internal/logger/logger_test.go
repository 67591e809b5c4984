package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerboseToggle(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetVerbose(false)
	Info("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	defer SetVerbose(false)
	assert.True(t, IsVerbose())

	Debug("first %s", "message")
	Info("second")
	Warn("third")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] first message")
	assert.Contains(t, out, "[INFO] second")
	assert.Contains(t, out, "[WARN] third")
}
