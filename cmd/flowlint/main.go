// Package main provides the flowlint command line interface.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "flowlint",
		Usage:                 "Validate and auto-fix workflow definitions",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			ValidateCommand(),
			FixCommand(),
			ServeCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "flowlint:", err)
		os.Exit(1)
	}
}
