// Package cacheindex holds the in-memory index of cached audio entries and
// persists it to a metadata.json sidecar in the cache directory.
//
// The sidecar is a write-behind mirror: the index is loaded once at startup
// and is the sole source of truth afterwards. A missing or corrupt sidecar
// degrades to an empty index rather than an error, so a damaged cache
// directory costs re-downloads, never a crash.
//
// The Index itself is not safe for concurrent use; the audiocache facade
// serializes all mutations behind its own lock.
package cacheindex
