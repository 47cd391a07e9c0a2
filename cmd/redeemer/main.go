// Package main provides the entry point for the redeemer service.
package main

import (
	"context"
	"os"

	"github.com/layer-3/redeemer/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
