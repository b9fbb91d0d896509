package main

import (
	"os"

	"github.com/AdamHavlicek/blurhash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
