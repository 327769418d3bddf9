// Command cpbl-month-range blind-scans a range of CPBL game numbers and keeps one month's games.
package main

import "github.com/pfrederiksen/cpbl-games/internal/cli"

func main() {
	cli.ExecuteRange()
}
