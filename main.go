package main

import (
	"os"

	"github.com/MJE43/tile-variations-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
