package main

import (
	"os"

	"brightrec/cmd/brightrec/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
