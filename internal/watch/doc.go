// Package watch notices changes to the media library directory tree and
// triggers a debounced rescan.
//
// The watcher observes the root and every program, station, and category
// directory beneath it. Directories created while running are added as they
// appear. Bursts of events collapse into one callback once the tree has been
// quiet for the debounce interval.
package watch
