package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 10, 17, 15, 4, 5, 123_000_000, time.UTC)
}

func TestRunningLineFormat(t *testing.T) {
	var running, history bytes.Buffer
	l := New(&running, &history, Options{})
	l.now = fixedClock

	l.Errorf("backup failed: %v", "boom")

	line := running.String()
	pattern := fmt.Sprintf(`^2024-10-17 15:04:05,123 - %d-main - .*log_test\.go\[line:\d+\] - ERROR: backup failed: boom\n$`, os.Getpid())
	assert.Regexp(t, regexp.MustCompile(pattern), line)
	assert.Empty(t, history.String())
}

func TestHistoryLineFormat(t *testing.T) {
	var running, history bytes.Buffer
	l := New(&running, &history, Options{})
	l.now = fixedClock

	l.Record("switched to %s", "https://pypi.org/simple")

	assert.Equal(t, "2024-10-17 15:04:05,123 - switched to https://pypi.org/simple\n", history.String())
	assert.Empty(t, running.String())
}

func TestMinimumLevel(t *testing.T) {
	var running bytes.Buffer
	l := New(&running, &bytes.Buffer{}, Options{})
	l.Debugf("hidden")
	l.Infof("shown")
	assert.NotContains(t, running.String(), "hidden")
	assert.Contains(t, running.String(), "INFO: shown")

	running.Reset()
	l = New(&running, &bytes.Buffer{}, Options{Debug: true})
	l.Debugf("now visible")
	assert.Contains(t, running.String(), "DEBUG: now visible")
}

func TestOpen_AppendsAndCloses(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l, err := Open(dir, Options{})
	require.NoError(t, err)
	l.Warnf("first")
	l.Record("one")
	require.NoError(t, l.Close())

	// Writes after Close are dropped rather than panicking.
	l.Errorf("after close")

	l, err = Open(dir, Options{})
	require.NoError(t, err)
	l.Record("two")
	require.NoError(t, l.Close())

	running, err := os.ReadFile(filepath.Join(dir, RunningLogName))
	require.NoError(t, err)
	assert.Contains(t, string(running), "WARNING: first")
	assert.NotContains(t, string(running), "after close")

	history, err := os.ReadFile(filepath.Join(dir, HistoryLogName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(history)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], " - one"))
	assert.True(t, strings.HasSuffix(lines[1], " - two"))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Errorf("nothing")
	l.Record("nothing")
	assert.NoError(t, l.Close())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARNING", LevelWarning.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
