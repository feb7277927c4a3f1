// Package main provides the entry point for the pricetag tool.
package main

import (
	"pricetag/internal/cli"
)

func main() {
	cli.Execute()
}
