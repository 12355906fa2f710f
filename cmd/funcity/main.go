package main

import (
	"os"

	"github.com/cwbudde/funcity/cmd/funcity/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
