// Package main is the entry point for the ssello-gateway API server.
package main

import (
	"os"

	"github.com/donaldgifford/ssello-gateway/cmd/ssello-gateway/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
