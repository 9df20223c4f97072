package filestore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcsa-hvr/circuit1021/internal/ports"
)

func TestTokenFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFile)
	f := NewTokenFile(path, "http://localhost:8001/api")
	ctx := context.Background()

	_, err := f.Load(ctx)
	require.ErrorIs(t, err, ports.ErrNoToken)

	require.NoError(t, f.Save(ctx, "token-admin-1"))
	got, err := f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-admin-1", got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "token: token-admin-1")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	require.NoError(t, f.Save(ctx, "token-admin-2"))
	got, err = f.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-admin-2", got)

	require.NoError(t, f.Clear(ctx))
	_, err = f.Load(ctx)
	require.ErrorIs(t, err, ports.ErrNoToken)
	require.NoError(t, f.Clear(ctx))
}

func TestTokenFile_OtherBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	ctx := context.Background()
	require.NoError(t, NewTokenFile(path, "https://one.example.org/api").Save(ctx, "t1"))

	_, err := NewTokenFile(path, "https://two.example.org/api").Load(ctx)
	require.ErrorIs(t, err, ports.ErrNoToken)

	got, err := NewTokenFile(path, "").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t1", got)
}

func TestTokenFile_BlankAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	blank := filepath.Join(dir, "blank.yaml")
	require.NoError(t, os.WriteFile(blank, []byte("token: \"\"\n"), 0o600))
	_, err := NewTokenFile(blank, "").Load(ctx)
	require.ErrorIs(t, err, ports.ErrNoToken)

	corrupt := filepath.Join(dir, "corrupt.yaml")
	require.NoError(t, os.WriteFile(corrupt, []byte("token: [unterminated"), 0o600))
	_, err = NewTokenFile(corrupt, "").Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNoToken)
}

func TestDefaultPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("config dir layout differs on windows")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if runtime.GOOS == "darwin" {
		t.Setenv("HOME", "/tmp/home")
	}
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, DefaultFile, filepath.Base(p))
	assert.Equal(t, DefaultDir, filepath.Base(filepath.Dir(p)))
}
