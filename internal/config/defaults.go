package config

const (
	defaultCacheDir               = "~/.cache/whispercache"
	defaultMaxCacheBytes          = 100 * 1024 * 1024 // 100 MiB
	defaultPreloadWindow          = 5
	defaultDownloadTimeoutSeconds = 0 // no timeout; a hung transfer blocks only its own fetch
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Cache: Cache{
			Directory:              defaultCacheDir,
			MaxCacheBytes:          defaultMaxCacheBytes,
			PreloadWindow:          defaultPreloadWindow,
			DownloadTimeoutSeconds: defaultDownloadTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
