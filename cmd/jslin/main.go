package main

import (
	"os"

	"github.com/jslang/jslin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
