package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("postfix")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "postfix",
		Short: "Parse arithmetic expressions to postfix form and evaluate them",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log more (repeatable)")

	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newRPNCmd())
	rootCmd.AddCommand(newVarsCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}
