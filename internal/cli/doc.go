// Package cli implements the command-line interfaces for cpbl-games.
//
// Three Cobra commands share one setup path: a single-game fetch
// (cpbl-game), a month scan that follows schedule links (cpbl-month) and a
// blind game-number range scan (cpbl-month-range). Each resolves its
// configuration through the config package, wires the scraper, the optional
// record cache and metrics, and writes a JSON (or text) payload to stdout or
// an --output file. Progress and diagnostics go to stderr.
package cli
