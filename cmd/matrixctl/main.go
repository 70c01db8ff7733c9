package main

import (
	"os"

	"glaze-matrix-be/cmd/matrixctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
