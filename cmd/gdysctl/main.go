// Package main is the entry point for the gdysctl CLI.
// The CLI is the office terminal tool for interacting with the GDYS API.
package main

import (
	"os"

	"gdys/cmd/gdysctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
