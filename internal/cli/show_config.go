// internal/cli/show_config.go
package cli

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

// showCmd groups inspection commands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for inspecting proofbench state",
}

// showConfigCmd dumps the resolved configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pp.Println(*GetConfig())
		return err
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
	rootCmd.AddCommand(showCmd)
}
