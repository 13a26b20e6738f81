package main

import (
	"os"

	"github.com/lician/backend/cmd/lician/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
