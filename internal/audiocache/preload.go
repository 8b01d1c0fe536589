package audiocache

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"whispercache/internal/logging"
)

// Preload warms the cache for upcoming items. keys is the play-order list of
// resource identifiers and currentIndex the item currently playing; the next
// window items are fetched, plus the first window items when currentIndex is
// still near the start of the list.
//
// Batches are single-flight: a call made while another batch is running
// returns immediately without queuing. Fetches within a batch run
// concurrently and individual failures are ignored; GetCachedAudioURL
// already degrades each one to its original key.
func (c *Cache) Preload(ctx context.Context, keys []string, currentIndex int) {
	if !c.preloading.CompareAndSwap(false, true) {
		c.logger.Debug("preload already in progress, dropping batch")
		return
	}
	defer c.preloading.Store(false)

	targets := preloadTargets(keys, currentIndex, c.window)
	if len(targets) == 0 {
		return
	}

	batchID := uuid.NewString()
	c.logger.Debug("preload batch started",
		logging.String(logging.FieldBatchID, batchID),
		logging.Int("target_count", len(targets)),
		logging.Int("current_index", currentIndex))

	var wg sync.WaitGroup
	for _, key := range targets {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			c.GetCachedAudioURL(ctx, k)
		}(key)
	}
	wg.Wait()

	c.logger.Debug("preload batch finished",
		logging.String(logging.FieldBatchID, batchID))
}

// preloadTargets selects the window of keys to warm: the window items after
// current, plus a wrap-around warm-up of the first window items when current
// is near the start. The current item itself, empty keys, and duplicates are
// skipped.
func preloadTargets(keys []string, current, window int) []string {
	seen := make(map[string]struct{})
	var targets []string

	add := func(i int) {
		if i < 0 || i >= len(keys) || i == current {
			return
		}
		key := strings.TrimSpace(keys[i])
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		targets = append(targets, key)
	}

	for i := current + 1; i <= current+window; i++ {
		add(i)
	}
	if current < window {
		for i := 0; i < window; i++ {
			add(i)
		}
	}
	return targets
}
