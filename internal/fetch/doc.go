// Package fetch materializes audio resources into cache files.
//
// A key is either a local resource (file:// URL or bare absolute path),
// which is copied into the cache, or a remote http/https URL, which is
// downloaded. Either way the destination is stat-checked afterwards: a
// zero-byte or unstattable result counts as a failed fetch so empty files
// are never indexed as hits.
package fetch
