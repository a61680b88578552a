package main

import (
	"os"

	"golok/cmd/lokc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
