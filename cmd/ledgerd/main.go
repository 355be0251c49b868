// ledgerd is the double-entry ledger engine server and CLI.
package main

import (
	"os"

	"github.com/granary/ledger-engine/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
