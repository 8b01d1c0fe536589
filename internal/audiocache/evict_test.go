package audiocache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"whispercache/internal/cacheindex"
	"whispercache/internal/testsupport"
)

// seedEntry writes a backing file into the cache dir and registers it with
// the given download time, bypassing the fetch path.
func seedEntry(t *testing.T, c *Cache, key string, size, downloadTime int64) string {
	t.Helper()
	path := filepath.Join(c.dir, key+".mp3")
	testsupport.WriteFile(t, path, size)
	c.index.Set(key, cacheindex.Entry{
		OriginalURL:  key,
		LocalPath:    path,
		DownloadTime: downloadTime,
		FileSize:     size,
	})
	return path
}

func TestEvictionScenario(t *testing.T) {
	// Capacity 100: entries of 60 (t=1) and 30 (t=2), then a 40-byte
	// arrival. The t=1 entry goes, leaving 30 + 40 = 70.
	server, _ := countingServer(t, make([]byte, 40))
	c := newTestCache(t, 100)

	oldPath := seedEntry(t, c, "old", 60, 1)
	newishPath := seedEntry(t, c, "newish", 30, 2)

	resolved := c.GetCachedAudioURL(context.Background(), server.URL+"/arrival.mp3")
	if resolved == server.URL+"/arrival.mp3" {
		t.Fatal("arrival fetch should have succeeded")
	}

	stats := c.Stats()
	if stats.TotalBytes != 70 {
		t.Errorf("total after eviction = %d, want 70", stats.TotalBytes)
	}
	if stats.Count != 2 {
		t.Errorf("entry count = %d, want 2", stats.Count)
	}
	if _, ok := c.index.Get("old"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Error("evicted backing file should be deleted")
	}
	if _, err := os.Stat(newishPath); err != nil {
		t.Errorf("newer entry's file should survive: %v", err)
	}
}

func TestEvictionOldestFirst(t *testing.T) {
	// Two evictions needed: t1 and t2 go, t3 survives.
	server, _ := countingServer(t, make([]byte, 50))
	c := newTestCache(t, 100)

	seedEntry(t, c, "t1", 30, 1)
	seedEntry(t, c, "t2", 30, 2)
	t3Path := seedEntry(t, c, "t3", 30, 3)

	c.GetCachedAudioURL(context.Background(), server.URL+"/arrival.mp3")

	if _, ok := c.index.Get("t1"); ok {
		t.Error("t1 should be evicted")
	}
	if _, ok := c.index.Get("t2"); ok {
		t.Error("t2 should be evicted")
	}
	if _, ok := c.index.Get("t3"); !ok {
		t.Error("t3 should survive")
	}
	if _, err := os.Stat(t3Path); err != nil {
		t.Errorf("t3 backing file should survive: %v", err)
	}
	if got := c.Stats().TotalBytes; got != 80 {
		t.Errorf("total = %d, want 80 (t3 + arrival)", got)
	}
}

func TestEvictionAdmitsOversizedSingleton(t *testing.T) {
	server, _ := countingServer(t, make([]byte, 500))
	c := newTestCache(t, 100)

	seedEntry(t, c, "a", 60, 1)
	seedEntry(t, c, "b", 30, 2)

	key := server.URL + "/huge.mp3"
	resolved := c.GetCachedAudioURL(context.Background(), key)
	if resolved == key {
		t.Fatal("oversized entry must still be admitted")
	}

	stats := c.Stats()
	if stats.Count != 1 {
		t.Errorf("count = %d, want 1 (everything evictable was evicted)", stats.Count)
	}
	if stats.TotalBytes != 500 {
		t.Errorf("total = %d, want 500", stats.TotalBytes)
	}
	if stats.UsagePercent <= 100 {
		t.Errorf("usage = %.1f, want > 100", stats.UsagePercent)
	}
}

func TestNoEvictionWhenItFits(t *testing.T) {
	server, _ := countingServer(t, make([]byte, 10))
	c := newTestCache(t, 100)

	aPath := seedEntry(t, c, "a", 60, 1)

	c.GetCachedAudioURL(context.Background(), server.URL+"/small.mp3")

	if _, err := os.Stat(aPath); err != nil {
		t.Errorf("no eviction expected, but file is gone: %v", err)
	}
	if got := c.Stats().TotalBytes; got != 70 {
		t.Errorf("total = %d, want 70", got)
	}
}

func TestEvictionToleratesDeleteFailure(t *testing.T) {
	server, _ := countingServer(t, make([]byte, 80))
	c := newTestCache(t, 100)

	// A directory with content cannot be os.Remove'd, so this candidate's
	// delete fails. The entry must still leave the index and eviction must
	// reach the next candidate.
	stubborn := filepath.Join(c.dir, "stubborn-dir")
	testsupport.WriteFile(t, filepath.Join(stubborn, "pin"), 1)
	c.index.Set("stubborn", cacheindex.Entry{
		OriginalURL:  "stubborn",
		LocalPath:    stubborn,
		DownloadTime: 1,
		FileSize:     40,
	})
	seedEntry(t, c, "victim", 40, 2)

	key := server.URL + "/arrival.mp3"
	if got := c.GetCachedAudioURL(context.Background(), key); got == key {
		t.Fatal("fetch should not be aborted by a delete failure")
	}

	if _, ok := c.index.Get("stubborn"); ok {
		t.Error("entry with undeletable file should still leave the index")
	}
	if _, ok := c.index.Get("victim"); ok {
		t.Error("eviction should continue past the failed delete")
	}
	if got := c.Stats().TotalBytes; got != 80 {
		t.Errorf("total = %d, want 80 (arrival only)", got)
	}
}
