package cacheindex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"whispercache/internal/fileutil"
	"whispercache/internal/logging"
)

// SidecarName is the index file kept alongside cached audio files.
const SidecarName = "metadata.json"

// Store persists an Index to the metadata.json sidecar in the cache directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a sidecar store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "cacheindex"),
	}
}

// Path returns the sidecar file location.
func (s *Store) Path() string {
	return filepath.Join(s.dir, SidecarName)
}

// sidecar is the persisted wire shape: an ordered list of [key, entry] pairs
// plus the declared total size.
type sidecar struct {
	CachedFiles      []sidecarPair `json:"cachedFiles"`
	CurrentCacheSize int64         `json:"currentCacheSize"`
}

type sidecarPair struct {
	Key   string
	Entry Entry
}

func (p sidecarPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Key, p.Entry})
}

func (p *sidecarPair) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("expected [key, entry] pair, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Key); err != nil {
		return fmt.Errorf("decode pair key: %w", err)
	}
	if err := json.Unmarshal(raw[1], &p.Entry); err != nil {
		return fmt.Errorf("decode pair entry: %w", err)
	}
	return nil
}

// Load reads the sidecar into a fresh Index. A missing or unreadable sidecar
// yields an empty index; a corrupt one is logged and likewise degrades to an
// empty index. Load never fails: losing the index only costs re-downloads.
// The size sum is recomputed from the loaded entries, and drift from the
// declared value is corrected with a warning.
func (s *Store) Load() *Index {
	idx := NewIndex()

	if err := fileutil.EnsureDir(s.dir); err != nil {
		s.logger.Warn("failed to create cache directory",
			logging.String("dir", s.dir),
			logging.Error(err))
		return idx
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to read cache metadata",
				logging.String("path", s.Path()),
				logging.Error(err))
		}
		return idx
	}
	if len(data) == 0 {
		return idx
	}

	var persisted sidecar
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.logger.Warn("cache metadata is corrupt, starting with empty index",
			logging.String("path", s.Path()),
			logging.Error(err))
		return idx
	}

	for _, pair := range persisted.CachedFiles {
		if pair.Key == "" {
			continue
		}
		// The pair key is authoritative; a hand-edited entry field must not
		// desynchronize the map key from the entry.
		pair.Entry.OriginalURL = pair.Key
		idx.Set(pair.Key, pair.Entry)
	}

	if idx.recomputeSize(persisted.CurrentCacheSize) {
		s.logger.Warn("cache size drifted from persisted value, recomputed",
			logging.Int64("declared_bytes", persisted.CurrentCacheSize),
			logging.Int64("actual_bytes", idx.Size()))
	}

	s.logger.Debug("loaded cache metadata",
		logging.Int("entry_count", idx.Len()),
		logging.Int64("total_bytes", idx.Size()))

	return idx
}

// Save writes the index to the sidecar atomically via a temp file + rename.
// Pairs are ordered by key so repeated saves of the same index are
// byte-identical.
func (s *Store) Save(idx *Index) error {
	if err := fileutil.EnsureDir(s.dir); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	pairs := make([]sidecarPair, 0, idx.Len())
	for _, entry := range idx.collect() {
		pairs = append(pairs, sidecarPair{Key: entry.OriginalURL, Entry: entry})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })

	data, err := json.MarshalIndent(sidecar{
		CachedFiles:      pairs,
		CurrentCacheSize: idx.Size(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache metadata: %w", err)
	}

	target := s.Path()
	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp metadata: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename metadata: %w", err)
	}
	return nil
}
