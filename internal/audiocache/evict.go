package audiocache

import (
	"errors"
	"io/fs"
	"os"

	"whispercache/internal/logging"
)

// reclaimLocked frees space for an incoming entry of incomingSize bytes by
// evicting oldest-downloaded entries first. Callers hold c.mu and have not
// yet accounted for the incoming entry.
//
// A failed file delete is logged and the entry is dropped from the index
// anyway; one stubborn file must not abort eviction of the rest or the
// caller's fetch. When candidates run out the incoming entry is still
// admitted over budget: the engine does not reject oversized single items.
func (c *Cache) reclaimLocked(incomingSize int64) {
	if c.index.Size()+incomingSize <= c.capacity {
		return
	}

	evicted := 0
	var freed int64
	for _, entry := range c.index.OldestFirst() {
		if c.index.Size()+incomingSize <= c.capacity {
			break
		}
		if err := os.Remove(entry.LocalPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("failed to delete evicted file",
				logging.String("local_path", entry.LocalPath),
				logging.Error(err))
		}
		c.index.Remove(entry.OriginalURL)
		evicted++
		freed += entry.FileSize
	}

	if evicted > 0 {
		c.persistLocked()
		c.logger.Debug("evicted cache entries",
			logging.Int("evicted_count", evicted),
			logging.Int64("freed_bytes", freed),
			logging.Int64("incoming_bytes", incomingSize),
			logging.Int64("total_bytes", c.index.Size()))
	}
}
