package main

import (
	"os"

	"github.com/rustyeddy/stockbrief/cmd/stockbrief/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
