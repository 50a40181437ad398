package main

import (
	"os"

	"github.com/betsim/betroute/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
