package main

import (
	"os"

	"github.com/Mahdi-s/mini-pascal-interpreter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
