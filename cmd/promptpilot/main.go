// Package main provides the promptpilot command: an interactive menu and
// scriptable subcommands for saving and reusing prompts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/promptpilot/pkg/executor/cli"
)

func main() {
	// Create context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
