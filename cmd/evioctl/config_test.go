package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitConfig_File(t *testing.T) {
	resetFlags()
	path := filepath.Join(t.TempDir(), "evioctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("json: true\npayload-bytes: 8\ncache-size: 16\ndepth: 3\n"), 0o644))

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })

	require.NoError(t, initConfig())
	require.True(t, jsonOut)
	require.Equal(t, 8, payloadBytes)
	require.Equal(t, 16, cacheSize)
	require.Equal(t, 3, maxDepth)
}

func TestInitConfig_MissingExplicitFile(t *testing.T) {
	resetFlags()
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { cfgFile = "" })

	require.Error(t, initConfig())
}

func TestNewLogger(t *testing.T) {
	resetFlags()
	l, err := newLogger()
	require.NoError(t, err)
	require.NotNil(t, l)

	verbose = true
	l, err = newLogger()
	require.NoError(t, err)
	require.NotNil(t, l)
}
