package main

import (
	"os"

	"snapnote/cmd/snapnote/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
