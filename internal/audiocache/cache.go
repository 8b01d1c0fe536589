package audiocache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/singleflight"

	"whispercache/internal/cachekey"
	"whispercache/internal/cacheindex"
	"whispercache/internal/config"
	"whispercache/internal/fetch"
	"whispercache/internal/fileutil"
	"whispercache/internal/logging"
)

// lockName guards a cache directory against concurrent processes.
const lockName = "cache.lock"

// Cache is the engine handle. Construct one per process with New and inject
// it wherever audio resolution is needed; there is no package-level instance.
type Cache struct {
	dir      string
	capacity int64
	window   int

	logger  *slog.Logger
	store   *cacheindex.Store
	fetcher *fetch.Fetcher
	lock    *flock.Flock

	mu    sync.Mutex
	index *cacheindex.Index

	flight     singleflight.Group
	preloading atomic.Bool

	now func() time.Time
}

// Stats describes current cache usage. UsagePercent is deliberately not
// clamped: an over-budget singleton reports more than 100.
type Stats struct {
	Count         int     `json:"count"`
	TotalBytes    int64   `json:"total_bytes"`
	CapacityBytes int64   `json:"capacity_bytes"`
	UsagePercent  float64 `json:"usage_percent"`
}

// New builds a cache handle from config, loading the persisted index. It
// never fails: an unusable cache directory degrades to an empty index and
// pass-through resolution. Callers should Close the handle on shutdown to
// release the directory lock.
func New(cfg *config.Config, logger *slog.Logger) *Cache {
	if cfg == nil {
		defaults := config.Default()
		cfg = &defaults
	}
	dir := cfg.Cache.Directory
	store := cacheindex.NewStore(dir, logger)

	c := &Cache{
		dir:      dir,
		capacity: cfg.Cache.MaxCacheBytes,
		window:   cfg.Cache.PreloadWindow,
		logger:   logging.NewComponentLogger(logger, "audiocache"),
		store:    store,
		fetcher:  fetch.New(logger, time.Duration(cfg.Cache.DownloadTimeoutSeconds)*time.Second),
		index:    store.Load(),
		lock:     flock.New(filepath.Join(dir, lockName)),
		now:      time.Now,
	}

	if ok, err := c.lock.TryLock(); err != nil || !ok {
		// Another process owns the directory. Keep serving lookups; the
		// worst case of a shared directory is redundant downloads.
		c.logger.Warn("cache directory lock unavailable",
			logging.String("lock_path", c.lock.Path()),
			logging.Error(err))
	}

	return c
}

// Close releases the cache directory lock.
func (c *Cache) Close() error {
	return c.lock.Unlock()
}

// GetCachedAudioURL resolves key to a local file path, fetching and caching
// it on a miss. It never fails outward: any invalid input or internal error
// returns key unchanged so the caller can stream from the network.
func (c *Cache) GetCachedAudioURL(ctx context.Context, key string) string {
	if strings.TrimSpace(key) == "" {
		return key
	}

	c.mu.Lock()
	entry, ok := c.index.Get(key)
	c.mu.Unlock()

	if ok {
		if _, exists := fileutil.FileSize(entry.LocalPath); exists {
			return entry.LocalPath
		}
		// The backing file vanished out-of-band. Drop the dangling entry
		// and fall through to a fresh fetch.
		c.mu.Lock()
		if _, removed := c.index.Remove(key); removed {
			c.persistLocked()
		}
		c.mu.Unlock()
		c.logger.Warn("removed dangling cache entry",
			logging.String("key", key),
			logging.String("local_path", entry.LocalPath))
	}

	// Concurrent resolves of the same uncached key share one fetch; both
	// write to the same deterministic path anyway, so deduplicating is pure
	// savings.
	path, err, _ := c.flight.Do(key, func() (any, error) {
		return c.fetchAndAdmit(ctx, key)
	})
	if err != nil {
		c.logger.Warn("fetch failed, falling back to original key",
			logging.String("key", key),
			logging.Error(err))
		return key
	}
	return path.(string)
}

// fetchAndAdmit materializes key, makes room, and records the new entry.
func (c *Cache) fetchAndAdmit(ctx context.Context, key string) (string, error) {
	destPath := cachekey.LocalPath(c.dir, key)

	size, err := c.fetcher.Fetch(ctx, key, destPath)
	if err != nil {
		return "", err
	}

	entry := cacheindex.Entry{
		OriginalURL:  key,
		LocalPath:    destPath,
		DownloadTime: c.now().UnixMilli(),
		FileSize:     size,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.reclaimLocked(size)
	c.index.Set(key, entry)
	c.persistLocked()

	c.logger.Debug("cached audio resource",
		logging.String("key", key),
		logging.String("local_path", destPath),
		logging.Int64("size_bytes", size),
		logging.Int64("total_bytes", c.index.Size()))

	return destPath, nil
}

// Clear deletes every backing file and empties the index. Individual delete
// failures are logged and skipped; the index is emptied regardless.
func (c *Cache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, entry := range c.index.OldestFirst() {
		if err := os.Remove(entry.LocalPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("failed to delete cached file",
				logging.String("local_path", entry.LocalPath),
				logging.Error(err))
		}
	}

	c.index.Reset()
	c.persistLocked()
	c.logger.InfoContext(ctx, "cleared audio cache", logging.String("dir", c.dir))
}

// Remove deletes a single entry and its backing file.
func (c *Cache) Remove(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("key cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.index.Remove(key)
	if !ok {
		return fmt.Errorf("key %q not found in cache", key)
	}
	if err := os.Remove(entry.LocalPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn("failed to delete cached file",
			logging.String("local_path", entry.LocalPath),
			logging.Error(err))
	}
	c.persistLocked()

	c.logger.DebugContext(ctx, "removed cache entry", logging.String("key", key))
	return nil
}

// Stats returns a pure read of current usage.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	usage := 0.0
	if c.capacity > 0 {
		usage = float64(c.index.Size()) / float64(c.capacity) * 100
	}
	return Stats{
		Count:         c.index.Len(),
		TotalBytes:    c.index.Size(),
		CapacityBytes: c.capacity,
		UsagePercent:  usage,
	}
}

// List returns all entries sorted newest-first for inspection.
func (c *Cache) List() []cacheindex.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.NewestFirst()
}

// persistLocked mirrors the index to the sidecar. Callers hold c.mu. A save
// failure is logged, never propagated: the in-memory index stays
// authoritative for this process.
func (c *Cache) persistLocked() {
	if err := c.store.Save(c.index); err != nil {
		c.logger.Warn("failed to persist cache metadata", logging.Error(err))
	}
}
