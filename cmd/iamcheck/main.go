// Package main is the entry point for the iamcheck CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/vaultgate/iampolicy/pkg/errutil"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

// run builds and executes the root command, translating a returned error
// into one of the three documented exit codes (see exitcode.go).
func run() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		errutil.LogError(slog.Default(), "iamcheck failed", err)
		return exitCodeFor(err)
	}
	return 0
}
