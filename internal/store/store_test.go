package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "location")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "location", "tokyo"))
	v, ok, err := s.Get(ctx, "location")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tokyo", v)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "location")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "location", "São Paulo"))
	require.NoError(t, s.Set(ctx, "other", "value"))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get(ctx, "location")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "São Paulo", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "location", "lima"))
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))

	_, err := OpenFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse preferences")
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(ctx, "redis://"+mr.Addr()+"/0", "cw:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok, err := s.Get(ctx, "location")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "location", "berlin"))

	v, ok, err := s.Get(ctx, "location")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "berlin", v)

	raw, err := mr.Get("cw:location")
	require.NoError(t, err)
	assert.Equal(t, "berlin", raw)
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), "redis://"+addr+"/0", "")
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, b)

	b, err = Open(ctx, Options{Backend: BackendFile, FilePath: filepath.Join(t.TempDir(), "p.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, b)

	mr := miniredis.RunT(t)
	b, err = Open(ctx, Options{Backend: BackendRedis, RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, b)
	require.NoError(t, b.Close())

	_, err = Open(ctx, Options{Backend: "etcd"})
	require.Error(t, err)
}
