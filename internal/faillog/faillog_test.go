package faillog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRecordsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")

	l, err := New(path)
	require.NoError(t, err)

	l.Manifest("run-1", "2045-3", errors.New("no pages found on chapter page"))
	l.Image("run-1", "2045-5", 6, errors.New("unexpected status code: 500"))
	require.NoError(t, l.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], `"kind":"manifest"`)
	assert.Contains(t, lines[0], `"chapter":"2045-3"`)
	assert.Contains(t, lines[0], `"run":"run-1"`)
	assert.Contains(t, lines[0], "no pages found")

	// pages are logged 1-based, the way a reader counts them
	assert.Contains(t, lines[1], `"kind":"image"`)
	assert.Contains(t, lines[1], `"chapter":"2045-5"`)
	assert.Contains(t, lines[1], `"page":7`)
}

func TestLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error_log.txt")

	for _, chapter := range []string{"1-1", "1-2"} {
		l, err := New(path)
		require.NoError(t, err)
		l.Manifest("run-1", chapter, errors.New("unreachable"))
		require.NoError(t, l.Close())
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	// a new run never truncates an earlier run's entries
	assert.Contains(t, string(content), `"chapter":"1-1"`)
	assert.Contains(t, string(content), `"chapter":"1-2"`)
}

func TestLogNilSafe(t *testing.T) {
	var l *Log

	assert.NotPanics(t, func() {
		l.Manifest("run-1", "1-1", errors.New("x"))
		l.Image("run-1", "1-1", 0, errors.New("x"))
	})
	assert.NoError(t, l.Close())
}
