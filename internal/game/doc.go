// Package game provides the identifier and record types for CPBL box-score pages.
//
// A Key (year, kind code, game number) names exactly one box page and maps to its
// URL deterministically. A Record holds the date and the two team names read off
// that page. The team order mirrors the left/right order on the page and says
// nothing about which side is home or away.
package game
