// Package main hosts the whispercache CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves audio resources through the cache,
// inspects usage, warms upcoming items, and scaffolds configuration. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
