package main

import (
	"os"

	"github.com/driftwood-studio/marquee/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
