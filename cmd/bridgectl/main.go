package main

import (
	"os"

	"github.com/ytget/player-bridge/cmd/bridgectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
