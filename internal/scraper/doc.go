// Package scraper fetches CPBL box-score and schedule pages.
//
// The Scraper owns the HTTP side: request headers, timeout, an optional
// request-rate ceiling, retries of network-level failures and charset-aware
// body decoding. Failures surface as *game.TransportError, distinguishing a
// failure status from a request that could not complete. Box pages are parsed
// with goquery and handed to the matcher; a page no strategy can read yields
// game.ErrNotFoundOrChanged.
package scraper
