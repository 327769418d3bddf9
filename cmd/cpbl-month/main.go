// Command cpbl-month fetches every CPBL game linked from one month's schedule page.
package main

import "github.com/pfrederiksen/cpbl-games/internal/cli"

func main() {
	cli.ExecuteMonth()
}
