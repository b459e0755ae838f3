// Package openapi holds the commands that work on OpenAPI documents.
package openapi

import "github.com/spf13/cobra"

// Apply adds the OpenAPI commands to rootCmd.
func Apply(rootCmd *cobra.Command) {
	for _, cmd := range []*cobra.Command{validateCmd, resolveCmd, convertCmd, queryCmd} {
		cmd.SilenceUsage = true
		rootCmd.AddCommand(cmd)
	}
}
