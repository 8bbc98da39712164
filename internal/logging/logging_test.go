package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesInfoToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "modinst.log")
	logger := New(Options{File: path, MaxSizeMB: 1, MaxBackups: 1})

	logger.Info("extracted archive", "files", 3)
	logger.Debug("hidden detail")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "extracted archive")
	assert.Contains(t, string(data), "files=3")
	assert.NotContains(t, string(data), "hidden detail")
}

func TestNewVerboseAlsoWritesDebugToStderr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modinst.log")
	var stderr bytes.Buffer
	logger := New(Options{File: path, Stderr: &stderr, Verbose: true})

	logger.With("root", "/games").Debug("replacing existing file", "path", "a.dll")
	logger.Info("done")
	require.NoError(t, logger.Close())

	assert.Contains(t, stderr.String(), "replacing existing file")
	assert.Contains(t, stderr.String(), "root=/games")
	assert.Contains(t, stderr.String(), "done")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "replacing existing file")
	assert.Contains(t, string(data), "done")
}

func TestNewQuietWithoutFileDiscards(t *testing.T) {
	var stderr bytes.Buffer
	logger := New(Options{Stderr: &stderr})
	logger.Info("nothing")
	assert.Empty(t, stderr.String())
	assert.NoError(t, logger.Close())

	assert.NoError(t, Discard().Close())
}
