package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beardo/toggl-tui/internal/logging"
)

func TestHelpersAreNilSafe(t *testing.T) {
	prev := logging.Logger
	logging.Logger = nil
	t.Cleanup(func() { logging.Logger = prev })

	assert.NotPanics(t, func() {
		logging.Debug("debug")
		logging.Info("info")
		logging.Warn("warn")
		logging.Error("error", "k", "v")
	})
}

func TestInitDebugWritesToStderrAndFile(t *testing.T) {
	prev := logging.Logger
	t.Cleanup(func() { logging.Logger = prev })

	dir := t.TempDir()
	var stderr bytes.Buffer
	require.NoError(t, logging.Init(logging.Config{Debug: true, Dir: dir, Stderr: &stderr}))

	logging.Debug("request sent", "path", "/me")

	assert.Contains(t, stderr.String(), "request sent")
	data, err := os.ReadFile(filepath.Join(dir, "logs", "toggl.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "path=/me")
}

func TestInitDefaultLevelSkipsDebug(t *testing.T) {
	prev := logging.Logger
	t.Cleanup(func() { logging.Logger = prev })

	dir := t.TempDir()
	var stderr bytes.Buffer
	require.NoError(t, logging.Init(logging.Config{Dir: dir, Stderr: &stderr}))

	logging.Debug("hidden")
	logging.Warn("visible")

	assert.Empty(t, stderr.String())
	data, err := os.ReadFile(filepath.Join(dir, "logs", "toggl.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible")
}
