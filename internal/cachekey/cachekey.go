// Package cachekey derives stable, filesystem-safe local paths from audio
// resource identifiers (URLs or local paths).
//
// The derived name is a 32-bit FNV-1a hash of the full identifier plus a
// best-effort file extension. Hash collisions would only make two keys share
// a file name; the key-to-path index remains the source of truth, so a
// collision is a rename risk, not a correctness risk.
package cachekey

import (
	"fmt"
	"hash/fnv"
	"path"
	"path/filepath"
	"strings"
)

// DefaultExtension is used when no usable extension can be derived from the key.
const DefaultExtension = ".mp3"

// maxExtensionLen bounds the extension token (without the dot). Anything
// longer is noise from a malformed URL, not a media suffix.
const maxExtensionLen = 10

// Hash returns a deterministic lower-hex 32-bit FNV-1a digest of key. The
// output is stable across processes and non-empty even for the empty string.
func Hash(key string) string {
	h := fnv.New32a()
	h.Write([]byte(key))
	return fmt.Sprintf("%08x", h.Sum32())
}

// Extension extracts the trailing ".ext" token of key, ignoring any query
// string. It returns DefaultExtension when the key has no usable extension
// and never fails on malformed input.
func Extension(key string) string {
	trimmed := key
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.IndexByte(trimmed, '#'); i >= 0 {
		trimmed = trimmed[:i]
	}

	ext := path.Ext(trimmed)
	if ext == "" || ext == "." {
		return DefaultExtension
	}
	token := ext[1:]
	if len(token) > maxExtensionLen {
		return DefaultExtension
	}
	for _, r := range token {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			continue
		}
		return DefaultExtension
	}
	return strings.ToLower(ext)
}

// LocalPath returns the cache file path for key inside cacheDir.
func LocalPath(cacheDir, key string) string {
	return filepath.Join(cacheDir, Hash(key)+Extension(key))
}
