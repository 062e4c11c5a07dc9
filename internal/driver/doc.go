// Package driver runs the format and lint engines over files on disk.
//
// Paths are expanded into a sorted file list, each file is detected,
// read and processed on a bounded errgroup, and results come back in the
// order of that list. Lint results can be memoized in memory (go-cache) and
// on disk (msgpack) keyed by dialect, config digest and content.
package driver
