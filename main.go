package main

import (
	"os"

	"github.com/openlot/parkd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
