// Package main is the entry point for the crop-advisor server.
package main

import (
	"os"

	"github.com/donaldgifford/crop-advisor/cmd/crop-advisor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
