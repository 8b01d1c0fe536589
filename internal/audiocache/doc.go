// Package audiocache is the disk-backed, size-bounded audio cache engine.
//
// The Cache handle resolves remote or local audio resources to cached files,
// evicts oldest-downloaded entries under size pressure, persists its index
// to a metadata.json sidecar across restarts, and speculatively warms a
// sliding window of upcoming items.
//
// # Failure contract
//
// GetCachedAudioURL never fails outward. Every internal error is logged and
// degrades to returning the original key, so a caller (typically an audio
// player) simply streams from the network instead of from disk.
//
// # Size management
//
// The cache enforces a configurable byte budget (cache.max_cache_bytes).
// Before a new entry is admitted, the oldest entries by download time are
// evicted until it fits. A single entry larger than the whole budget is
// still admitted, which is why reported usage can exceed 100%.
//
// Use `whispercache stats` to inspect current usage before adjusting limits.
package audiocache
