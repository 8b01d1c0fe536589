package cacheindex

import (
	"sort"
)

// Entry binds an original resource identifier to its cached local file. The
// JSON field names are the persisted wire contract and must not change.
type Entry struct {
	OriginalURL  string `json:"originalUrl"`
	LocalPath    string `json:"localPath"`
	DownloadTime int64  `json:"downloadTime"` // epoch milliseconds; sole eviction ordering key
	FileSize     int64  `json:"fileSize"`
}

// Index maps original keys to cache entries and tracks the running size sum.
type Index struct {
	entries map[string]Entry
	size    int64
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{entries: make(map[string]Entry)}
}

// Get returns the entry for key if present.
func (idx *Index) Get(key string) (Entry, bool) {
	entry, ok := idx.entries[key]
	return entry, ok
}

// Set inserts or replaces the entry for key, keeping the size sum exact.
// Re-caching an existing key overwrites rather than duplicates.
func (idx *Index) Set(key string, entry Entry) {
	if old, ok := idx.entries[key]; ok {
		idx.size -= old.FileSize
	}
	idx.entries[key] = entry
	idx.size += entry.FileSize
}

// Remove deletes the entry for key and subtracts its size. It returns the
// removed entry when one existed.
func (idx *Index) Remove(key string) (Entry, bool) {
	entry, ok := idx.entries[key]
	if !ok {
		return Entry{}, false
	}
	delete(idx.entries, key)
	idx.size -= entry.FileSize
	return entry, true
}

// Reset drops every entry and zeroes the size sum.
func (idx *Index) Reset() {
	idx.entries = make(map[string]Entry)
	idx.size = 0
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Size returns the tracked total of all entry sizes in bytes.
func (idx *Index) Size() int64 {
	return idx.size
}

// OldestFirst returns all entries sorted by download time ascending, with
// ties broken by key so eviction order is deterministic.
func (idx *Index) OldestFirst() []Entry {
	entries := idx.collect()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DownloadTime != entries[j].DownloadTime {
			return entries[i].DownloadTime < entries[j].DownloadTime
		}
		return entries[i].OriginalURL < entries[j].OriginalURL
	})
	return entries
}

// NewestFirst returns all entries sorted by download time descending, for
// inspection output.
func (idx *Index) NewestFirst() []Entry {
	entries := idx.collect()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].DownloadTime != entries[j].DownloadTime {
			return entries[i].DownloadTime > entries[j].DownloadTime
		}
		return entries[i].OriginalURL < entries[j].OriginalURL
	})
	return entries
}

func (idx *Index) collect() []Entry {
	entries := make([]Entry, 0, len(idx.entries))
	for _, entry := range idx.entries {
		entries = append(entries, entry)
	}
	return entries
}

// recomputeSize replaces the tracked sum with the actual sum over entries
// and reports whether the stored value had drifted.
func (idx *Index) recomputeSize(declared int64) bool {
	var total int64
	for _, entry := range idx.entries {
		total += entry.FileSize
	}
	idx.size = total
	return total != declared
}
