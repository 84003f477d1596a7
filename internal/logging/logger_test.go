package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/arikahn/lsh/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestNew_WritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, false)
	log.Info("starting up", "prompt", "$ ")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "starting up")
	assert.Contains(t, out, "prompt=$ ")
}

func TestNew_RespectsMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := logging.NewHandler(&buf, logging.WithColor(false), logging.WithLevel(slog.LevelWarn))
	log := slog.New(handler)

	log.Info("should not appear")
	log.Warn("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "should appear")
}

func TestHandler_SortsAttributesByKey(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, false)
	log.Info("event", "zebra", "1", "alpha", "2")

	out := buf.String()
	assert.True(t, indexOf(out, "alpha=2") < indexOf(out, "zebra=1"))
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
