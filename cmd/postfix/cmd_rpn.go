package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/postfix"
)

func newRPNCmd() *cobra.Command {
	var (
		in     inputFlags
		vocab  vocabFlags
		tokens bool
	)

	cmd := &cobra.Command{
		Use:   "rpn [expr...]",
		Short: "Print the postfix form of expressions",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := vocab.options()
			if err != nil {
				return err
			}
			srcs, err := in.sources(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			v := postfix.NewVocabulary(opts...)
			out := cmd.OutOrStdout()
			for _, src := range srcs {
				s, err := v.Parse(src.text)
				if err != nil {
					return fmt.Errorf("%s: %w", src.name, err)
				}
				if !tokens {
					fmt.Fprintln(out, s)
					continue
				}
				for _, tok := range s.Tokens() {
					fmt.Fprintf(out, "%d\t%v\t%v\n", tok.Pos, tok.Kind, tok)
				}
			}
			return nil
		},
	}

	in.register(cmd)
	vocab.register(cmd)
	cmd.Flags().BoolVar(&tokens, "tokens", false, "print one token per line with its column and kind")

	return cmd
}
