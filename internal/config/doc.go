// Package config loads, defaults, and validates the whispercache TOML
// configuration.
//
// Configuration resolves from an explicit --config path, then
// ~/.config/whispercache/config.toml, then a whispercache.toml in the working
// directory. Missing files are not an error: defaults apply and the cache
// runs out of ~/.cache/whispercache with a 100 MiB budget.
package config
