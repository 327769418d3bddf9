// Package storage caches fetched game records so repeated scans do not hit
// the origin server for pages that have already been read.
//
// Records are keyed by box URL. The file backend keeps one JSON file,
// records.json, in a data directory (default ~/.local/share/cpbl-games/);
// the redis backend stores one JSON value per key. Only successful fetches
// are cached: a missing or unreadable page may appear later.
package storage
