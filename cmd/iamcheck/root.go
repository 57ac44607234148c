// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the iamcheck CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "iamcheck",
		Short:   "Evaluate AWS-IAM-compatible JSON policies against a request",
		Version: version,
		Long: `iamcheck loads a JSON policy document and an optional request
context, then reports the Allow/Deny/Unspecified decision for an
action, resource, and (optionally) principal.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")
	cmd.AddCommand(NewCheckCmd())

	return cmd
}
