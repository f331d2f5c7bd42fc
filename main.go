package main

import (
	"os"

	"github.com/parserinator/parserinator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
