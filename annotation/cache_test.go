package annotation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const cachedSrc = `package controllers

//rest:controller /api/ping
type PingController struct{}

//rest:get /
func (c *PingController) Ping() {}
`

func TestCache_ScanOncePerKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ping_controller.go")
	assert.NoError(t, os.WriteFile(path, []byte(cachedSrc), 0o644))

	cache := NewCache()

	first, err := cache.Scan(dir)
	assert.NoError(t, err)
	assert.Len(t, first, 2)

	// Mutating the source does not invalidate the cache.
	assert.NoError(t, os.WriteFile(path, []byte("package controllers\n"), 0o644))

	second, err := cache.Scan(dir)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCache_ClearForcesRescan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ping_controller.go")
	assert.NoError(t, os.WriteFile(path, []byte(cachedSrc), 0o644))

	cache := NewCache()

	first, err := cache.Scan(dir)
	assert.NoError(t, err)
	assert.Len(t, first, 2)

	assert.NoError(t, os.WriteFile(path, []byte("package controllers\n"), 0o644))
	assert.Equal(t, 1, cache.Clear())

	second, err := cache.Scan(dir)
	assert.NoError(t, err)
	assert.Empty(t, second)
}

func TestCache_IncludeFilter(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "controllers"), 0o755))
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "internal"), 0o755))

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "controllers", "ping.go"), []byte(cachedSrc), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "internal", "other.go"), []byte(cachedSrc), 0o644))

	cache := NewCache()

	all, err := cache.Scan(dir)
	assert.NoError(t, err)
	assert.Len(t, all, 4)

	// Different include set is a different cache key.
	filtered, err := cache.Scan(dir, "controllers")
	assert.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestScanDir_SkipsTestAndHiddenFiles(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "_gen"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "ping.go"), []byte(cachedSrc), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "ping_test.go"), []byte(cachedSrc), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "_gen", "gen.go"), []byte(cachedSrc), 0o644))

	occs, err := NewScanner().ScanDir(dir)
	assert.NoError(t, err)
	assert.Len(t, occs, 2)
}
