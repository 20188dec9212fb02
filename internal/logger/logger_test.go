package logger_test

import (
	"bytes"
	"testing"

	"github.com/stationxml-rs/fixturecheck/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestNew_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, false)

	log.Debug("resolving oracle")
	log.Info("starting run")
	assert.Empty(t, buf.String())

	log.Warn("obspy oracle unavailable", "error", "python3 not found")
	assert.Contains(t, buf.String(), "level=warn")
	assert.Contains(t, buf.String(), `msg="obspy oracle unavailable"`)
	assert.Contains(t, buf.String(), `error="python3 not found"`)
}

func TestNew_VerboseShowsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger.New(&buf, true).Debug("obspy oracle resolved", "python", "/usr/bin/python3")

	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "python=/usr/bin/python3")
}

func TestNew_NoTimestampsOrColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	logger.New(&buf, true).Debug("x")

	assert.NotContains(t, buf.String(), "time=")
	assert.NotContains(t, buf.String(), "\x1b[")
}
