// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treeconv.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TREECONV_FORMAT", "TREECONV_VERBOSE", "TREECONV_ALLOW_COMMENTS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
format = "JSON"
verbose = true
allow_comments = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Format: "JSON", Verbose: true, AllowComments: true}, cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
format = "JSON"
verbose = true
`)
	t.Setenv("TREECONV_FORMAT", "XML")
	t.Setenv("TREECONV_VERBOSE", "false")
	t.Setenv("TREECONV_ALLOW_COMMENTS", "1")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "XML", cfg.Format)
	assert.False(t, cfg.Verbose)
	assert.True(t, cfg.AllowComments)
}

func TestLoad_InvalidBoolIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("TREECONV_VERBOSE", "maybe")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Verbose)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nonesuch.toml"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_Malformed(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "format = [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "treeconv.toml")
}
