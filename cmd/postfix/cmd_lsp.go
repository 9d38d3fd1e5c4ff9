package main

import (
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/postfix"
	"github.com/zephyrtronium/postfix/lsp"
)

func newLSPCmd() *cobra.Command {
	var vocab vocabFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := vocab.options()
			if err != nil {
				return err
			}
			server := lsp.NewServer("0.1.0", postfix.NewVocabulary(opts...))
			return server.RunStdio()
		},
	}

	vocab.register(cmd)

	return cmd
}
