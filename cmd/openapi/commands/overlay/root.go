// Package overlay holds the commands that work on OpenAPI Overlay documents.
package overlay

import "github.com/spf13/cobra"

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Work with OpenAPI Overlays",
	Long: `Commands for working with OpenAPI Overlays.

An overlay modifies an OpenAPI document without editing it: each action
selects nodes with a JSONPath target and removes them, merges an update into
them or merges a copy of another node into them.`,
}

// Apply adds the overlay command group to rootCmd.
func Apply(rootCmd *cobra.Command) {
	for _, cmd := range []*cobra.Command{applyCmd, validateCmd} {
		cmd.SilenceUsage = true
		overlayCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(overlayCmd)
}
