// Package main is the entry point for the cropctl CLI client.
package main

import (
	"github.com/donaldgifford/crop-advisor/cmd/cropctl/cmd"
)

func main() {
	cmd.Execute()
}
