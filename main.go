package main

import (
	"os"

	"github.com/chai-cli/chai/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
