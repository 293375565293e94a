package main

import (
	"os"

	"github.com/palettelabs/shade/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
