// Command dappbotctl checks API bodies against the wire shapes and renders
// envelopes from the command line.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
