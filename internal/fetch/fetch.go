package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"whispercache/internal/fileutil"
	"whispercache/internal/logging"
)

const filePrefix = "file://"

// ErrEmptyResult marks a fetch that completed but produced no bytes.
var ErrEmptyResult = errors.New("fetch: empty result")

// Fetcher copies or downloads resources to cache destinations.
type Fetcher struct {
	client *http.Client
	logger *slog.Logger
}

// New creates a Fetcher. A timeout of zero leaves remote transfers unbounded;
// a hung transfer then blocks only the caller awaiting that fetch.
func New(logger *slog.Logger, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		logger: logging.NewComponentLogger(logger, "fetch"),
	}
}

// IsLocal reports whether key names a local resource rather than a remote URL.
func IsLocal(key string) bool {
	return strings.HasPrefix(key, filePrefix) || filepath.IsAbs(key)
}

// localSource strips the file:// prefix, leaving a cleaned filesystem path.
func localSource(key string) string {
	return filepath.Clean(strings.TrimPrefix(key, filePrefix))
}

// Fetch materializes key into destPath and returns the resulting file size.
// Any failure leaves the index untouched by contract: the caller maps an
// error to "fall back to the original key". A partial download may remain on
// disk; it is never indexed and is overwritten by the next attempt.
func (f *Fetcher) Fetch(ctx context.Context, key, destPath string) (int64, error) {
	if IsLocal(key) {
		return f.fetchLocal(key, destPath)
	}
	return f.fetchRemote(ctx, key, destPath)
}

func (f *Fetcher) fetchLocal(key, destPath string) (int64, error) {
	source := localSource(key)

	// A self-referential copy (the source already is the cache file) is a
	// no-op; just verify the bytes are there.
	if source != destPath {
		if err := fileutil.CopyFile(source, destPath); err != nil {
			return 0, fmt.Errorf("copy local resource: %w", err)
		}
	}

	return verifyDestination(destPath)
}

func (f *Fetcher) fetchRemote(ctx context.Context, key, destPath string) (int64, error) {
	parsed, err := url.Parse(key)
	if err != nil {
		return 0, fmt.Errorf("invalid resource url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return 0, fmt.Errorf("invalid resource url %q", key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return 0, fmt.Errorf("build download request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download resource: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download resource: unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create cache file: %w", err)
	}

	_, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil {
		return 0, fmt.Errorf("write cache file: %w", copyErr)
	}
	if closeErr != nil {
		return 0, fmt.Errorf("close cache file: %w", closeErr)
	}

	f.logger.Debug("downloaded resource",
		logging.String("url", key),
		logging.String("dest", destPath))

	return verifyDestination(destPath)
}

// verifyDestination stats the written file. Zero bytes or a failed stat both
// count as a failed fetch.
func verifyDestination(destPath string) (int64, error) {
	size, ok := fileutil.FileSize(destPath)
	if !ok {
		return 0, fmt.Errorf("stat cache file %q: %w", destPath, ErrEmptyResult)
	}
	if size == 0 {
		return 0, fmt.Errorf("cache file %q: %w", destPath, ErrEmptyResult)
	}
	return size, nil
}
