package main

import (
	"os"

	"github.com/bnema/platform-intake/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
