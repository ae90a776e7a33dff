package main

import (
	"os"

	"github.com/courier-tools/courier-traffic/cmd"
)

func main() {
	if err := cmd.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
