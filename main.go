package main

import (
	"os"

	"github.com/prostheticlab/myoctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
