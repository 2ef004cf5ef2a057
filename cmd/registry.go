package cmd

import "github.com/spf13/cobra"

func RegisterCommands(root *cobra.Command) {
	root.AddCommand(versionCmd)

	root.AddCommand(showCmd)
	root.AddCommand(statsCmd)
	root.AddCommand(setCmd)
	root.AddCommand(watchCmd)
	root.AddCommand(configCmd)

	configCmd.AddCommand(
		configShowCmd,
		configInitCmd,
		configPathCmd,
	)
}
