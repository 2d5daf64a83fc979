// Package host holds the glue between the pure transforms and a chat host:
// submit handling, paragraph decoration, the single page watcher, the
// settings debounce and the counters exported for a textfile collector.
package host
