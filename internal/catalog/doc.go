// Package catalog scans the media library into a read-only tree of programs,
// stations, categories, and media items.
//
// The library is laid out as LibraryRoot/Program/Station/Category/File with
// four fixed levels. Hidden entries are skipped at every level, files with an
// unrecognized extension are rejected with a warning, and programs or stations
// that end up with no admitted children are dropped. Names are kept in sorted
// order so callers iterating programs and stations see a deterministic order.
//
// Every media item is addressable by its 4-segment path
// ("Program/Station/Category/File"); Resolve maps such a path back to the item
// and reports which level failed through *ResolveError. Items decode their
// source lazily: Thumbnail and Full each produce a proportionally scaled
// rendition on first use and memoize it for the life of the process. Prefetch
// materializes renditions ahead of interactive use with a bounded worker pool.
package catalog
