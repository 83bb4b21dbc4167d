package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rpggio/slabstock/internal/cli"
)

// Injected via ldflags.
var version = "dev"

func main() {
	cli.Version = version

	if err := cli.Execute(context.Background()); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
