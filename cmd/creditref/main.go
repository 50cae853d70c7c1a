package main

import (
	"os"

	"creditref/cmd/creditref/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
