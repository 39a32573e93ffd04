package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := NewWriterLogger(&buf, LogInfo, 0)

	logger.Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	logger.Warn("shown %d", 2)
	assert.Contains(t, buf.String(), "gosocial ")
	assert.Contains(t, buf.String(), "[warn] shown 2")
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "error", LogError.String())
	assert.Equal(t, "trace", LogTrace.String())
	assert.Equal(t, "unknown (9)", LogLevel(9).String())
}
