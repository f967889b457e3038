package main

import (
	"os"

	"github.com/AshGw/litecrypt/internal/commands"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
