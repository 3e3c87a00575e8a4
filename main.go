package main

import (
	"os"

	"github.com/fukushu-cli/fukushu/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
