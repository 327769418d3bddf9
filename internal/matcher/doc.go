// Package matcher extracts a game's date and team names from a parsed box page.
//
// Extraction runs an ordered list of strategies: the breadcrumb trail first,
// then the page title, then the full rendered page text. The first strategy
// whose match survives normalization wins and later strategies are never run.
// A page no strategy can read yields no result rather than an empty record.
package matcher
