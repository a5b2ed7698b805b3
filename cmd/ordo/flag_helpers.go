package main

import "github.com/spf13/cobra"

// hasChangedFlags reports whether any of the named task field flags was set.
func hasChangedFlags(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
