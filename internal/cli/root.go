package cli

import (
	"github.com/spf13/cobra"
)

// NewPoolCalcCommand — корневая команда poolcalc
func NewPoolCalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poolcalc [command] [flags]",
		Short: "poolcalc estimates the cost of building a swimming pool.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	cmd.AddCommand(NewCmdWizard())
	cmd.AddCommand(NewCmdEstimate())
	cmd.AddCommand(NewCmdCatalog())
	cmd.AddCommand(NewCmdHashPassword())

	return cmd
}
