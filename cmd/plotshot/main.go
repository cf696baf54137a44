// Command plotshot renders one plotter frame to a PNG file.
package main

import (
	"fmt"
	"os"

	"plotview/internal/cli"
)

func main() {
	if err := cli.NewShotCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "plotshot:", err)
		os.Exit(1)
	}
}
