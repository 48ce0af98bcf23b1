// Package thumbcache implements a size-bounded, shard-based store for
// externally produced thumbnail bytes. It sits off the query path: a miss
// here never blocks a search, it only means the caller regenerates and
// re-saves the thumbnail.
package thumbcache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
)

const dirName = "thumb_cache"

// Cache is a size-bounded artifact store laid out as
// <root>/.tagstudio/thumb_cache/<unix-ts>/<file_name>. All mutating
// operations serialize through mu; get is allowed to observe a file that
// is concurrently evicted, which yields a miss rather than an error.
type Cache struct {
	mu            sync.Mutex
	root          string // <library>/.tagstudio/thumb_cache
	maxFolderSize int64  // bytes
	maxTotalSize  int64  // bytes

	shardSize map[string]int64 // shard dir name -> bytes
	totalSize int64
}

// New opens (creating if necessary) the thumb cache under libraryRoot,
// folding the sizes of any shards already on disk into its bookkeeping.
// maxFolderSizeMB bounds one shard; maxTotalSizeMB bounds the cache as a
// whole and must be at least maxFolderSizeMB.
func New(libraryRoot string, maxFolderSizeMB, maxTotalSizeMB int64) (*Cache, error) {
	if maxTotalSizeMB < maxFolderSizeMB {
		return nil, fmt.Errorf("thumbcache: max_total_size_mb (%d) must be >= max_folder_size_mb (%d)", maxTotalSizeMB, maxFolderSizeMB)
	}
	root := filepath.Join(libraryRoot, ".tagstudio", dirName)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &liberr.IOFailure{Path: root, Cause: err}
	}

	c := &Cache{
		root:          root,
		maxFolderSize: maxFolderSizeMB * 1024 * 1024,
		maxTotalSize:  maxTotalSizeMB * 1024 * 1024,
		shardSize:     make(map[string]int64),
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &liberr.IOFailure{Path: root, Cause: err}
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		size, err := measureShard(filepath.Join(root, e.Name()))
		if err != nil {
			return nil, &liberr.IOFailure{Path: filepath.Join(root, e.Name()), Cause: err}
		}
		c.shardSize[e.Name()] = size
		c.totalSize += size
	}
	return c, nil
}

// Save writes data under fileName into the current shard, rotating to a
// freshly timestamped shard first if the current one would exceed
// maxFolderSize. It then evicts whole shards, oldest first, until
// totalSize is back within maxTotalSize.
func (c *Cache) Save(fileName string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	shard := c.currentShardLocked()
	if shard != "" && c.shardSize[shard]+int64(len(data)) > c.maxFolderSize {
		shard = ""
	}
	if shard == "" {
		var err error
		shard, err = c.newShardLocked()
		if err != nil {
			return err
		}
	}

	path := filepath.Join(c.root, shard, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &liberr.IOFailure{Path: path, Cause: err}
	}
	c.shardSize[shard] += int64(len(data))
	c.totalSize += int64(len(data))

	return c.evictLocked()
}

// Get scans shards in ascending (oldest-first) order and returns the
// bytes of the first fileName match. ok is false, with a nil error, on a
// clean miss.
func (c *Cache) Get(fileName string) (data []byte, ok bool, err error) {
	c.mu.Lock()
	shards := c.sortedShardsLocked()
	c.mu.Unlock()

	for _, shard := range shards {
		path := filepath.Join(c.root, shard, fileName)
		b, err := os.ReadFile(path)
		if err == nil {
			return b, true, nil
		}
		if !os.IsNotExist(err) {
			return nil, false, &liberr.IOFailure{Path: path, Cause: err}
		}
	}
	return nil, false, nil
}

// Clear removes every shard, then the thumb_cache directory itself. A
// shard whose files cannot all be removed is retained with its size
// re-measured, and Clear returns a non-nil error reporting the partial
// failure; shards that were fully removed are still gone from state.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for shard := range c.shardSize {
		path := filepath.Join(c.root, shard)
		if err := os.RemoveAll(path); err != nil {
			size, measureErr := measureShard(path)
			if measureErr == nil {
				c.shardSize[shard] = size
			}
			if firstErr == nil {
				firstErr = &liberr.IOFailure{Path: path, Cause: err}
			}
			continue
		}
		delete(c.shardSize, shard)
	}

	c.totalSize = 0
	for _, size := range c.shardSize {
		c.totalSize += size
	}

	if firstErr != nil {
		return firstErr
	}
	if err := os.Remove(c.root); err != nil && !os.IsNotExist(err) {
		return &liberr.IOFailure{Path: c.root, Cause: err}
	}
	return nil
}

// currentShardLocked returns the newest (highest-timestamp) shard name,
// or "" if none exist yet. Caller must hold mu.
func (c *Cache) currentShardLocked() string {
	shards := c.sortedShardsLocked()
	if len(shards) == 0 {
		return ""
	}
	return shards[len(shards)-1]
}

// sortedShardsLocked returns shard names in ascending timestamp order.
// Caller must hold mu.
func (c *Cache) sortedShardsLocked() []string {
	out := make([]string, 0, len(c.shardSize))
	for shard := range c.shardSize {
		out = append(out, shard)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.ParseInt(out[i], 10, 64)
		b, _ := strconv.ParseInt(out[j], 10, 64)
		return a < b
	})
	return out
}

// newShardLocked creates a fresh, empty shard directory named after the
// current unix timestamp. Names are kept strictly increasing even when
// two rotations land in the same wall-clock second (common under test,
// where writes take microseconds): the new name is bumped past the
// highest existing shard name so it never collides with, and reuses the
// bookkeeping of, a shard that was just judged full. Caller must hold mu.
func (c *Cache) newShardLocked() (string, error) {
	next := time.Now().Unix()
	for _, shard := range c.sortedShardsLocked() {
		existing, err := strconv.ParseInt(shard, 10, 64)
		if err == nil && existing >= next {
			next = existing + 1
		}
	}
	name := strconv.FormatInt(next, 10)

	path := filepath.Join(c.root, name)
	if err := os.Mkdir(path, 0o755); err != nil && !os.IsExist(err) {
		return "", &liberr.IOFailure{Path: path, Cause: err}
	}
	c.shardSize[name] = 0
	return name, nil
}

// evictLocked removes whole shards, oldest first, until totalSize fits
// within maxTotalSize. Caller must hold mu.
func (c *Cache) evictLocked() error {
	for c.totalSize > c.maxTotalSize {
		shards := c.sortedShardsLocked()
		if len(shards) == 0 {
			break
		}
		oldest := shards[0]
		path := filepath.Join(c.root, oldest)
		if err := os.RemoveAll(path); err != nil {
			return &liberr.IOFailure{Path: path, Cause: err}
		}
		c.totalSize -= c.shardSize[oldest]
		delete(c.shardSize, oldest)
	}
	return nil
}

func measureShard(path string) (int64, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	var total int64
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}
