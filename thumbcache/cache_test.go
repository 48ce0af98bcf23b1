package thumbcache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TagStudioDev/TagStudio-sub002/thumbcache"
)

func TestSaveAndGetRoundTrip(t *testing.T) {
	root := t.TempDir()
	c, err := thumbcache.New(root, 10, 500)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := c.Save("a.webp", []byte("hello")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, ok, err := c.Get("a.webp")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(data) != "hello" {
		t.Fatalf("Get = (%q, %v), want (\"hello\", true)", data, ok)
	}
}

func TestGetMissReportsNoError(t *testing.T) {
	root := t.TempDir()
	c, err := thumbcache.New(root, 10, 500)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, ok, err := c.Get("missing.webp")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get reported a hit for a file never saved")
	}
}

func TestNewFoldsExistingShardSizes(t *testing.T) {
	root := t.TempDir()
	shardDir := filepath.Join(root, ".tagstudio", "thumb_cache", "100")
	if err := os.MkdirAll(shardDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(shardDir, "x.webp"), []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := thumbcache.New(root, 10, 500)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data, ok, err := c.Get("x.webp")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || len(data) != 10 {
		t.Fatalf("Get = (%d bytes, %v), want (10 bytes, true) folded from pre-existing shard", len(data), ok)
	}
}

func TestEvictionRemovesOldestShardWhenTotalExceeded(t *testing.T) {
	root := t.TempDir()
	// 1 MB per folder, 1 MB total: every new shard should immediately
	// evict the previous one once its own write pushes total over budget.
	c, err := thumbcache.New(root, 1, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	big := make([]byte, 900*1024)
	if err := c.Save("first.webp", big); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := c.Save("second.webp", big); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	if _, ok, _ := c.Get("first.webp"); ok {
		t.Fatal("first.webp survived eviction, want it gone once the second shard pushed total over budget")
	}
	if _, ok, err := c.Get("second.webp"); err != nil || !ok {
		t.Fatalf("Get second.webp = (_, %v, %v), want (_, true, nil)", ok, err)
	}
}

func TestClearRemovesAllShardsAndDirectory(t *testing.T) {
	root := t.TempDir()
	c, err := thumbcache.New(root, 10, 500)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Save("a.webp", []byte("hello")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, ".tagstudio", "thumb_cache")); !os.IsNotExist(err) {
		t.Fatalf("thumb_cache directory still exists after Clear: err=%v", err)
	}
	if _, ok, _ := c.Get("a.webp"); ok {
		t.Fatal("Get reported a hit after Clear")
	}
}

func TestNewRejectsTotalSmallerThanFolder(t *testing.T) {
	root := t.TempDir()
	if _, err := thumbcache.New(root, 500, 10); err == nil {
		t.Fatal("expected New to reject max_total_size_mb < max_folder_size_mb")
	}
}
