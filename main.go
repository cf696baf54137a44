// Command plotview is an interactive pan-and-zoom function plotter.
package main

import (
	"os"

	"plotview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
