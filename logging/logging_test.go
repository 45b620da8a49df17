package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "annotext", "warn")

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Str("doc", "a.txt").Msg("visible")
	out := buf.String()
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "app=annotext")
	assert.Contains(t, out, "doc=a.txt")
}

func TestNewBadLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "annotext", "loud")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewLeavesGlobalLogger(t *testing.T) {
	before := log.Logger

	var buf bytes.Buffer
	_ = New(&buf, "annotext", "debug")

	assert.Equal(t, before, log.Logger)
}
