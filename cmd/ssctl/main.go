// Package main is the entry point for the ssctl CLI client.
package main

import (
	"github.com/donaldgifford/ssello-gateway/cmd/ssctl/cmd"
)

func main() {
	cmd.Execute()
}
