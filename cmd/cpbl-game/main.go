// Command cpbl-game fetches the date and teams of a single CPBL game.
package main

import "github.com/pfrederiksen/cpbl-games/internal/cli"

func main() {
	cli.ExecuteGame()
}
