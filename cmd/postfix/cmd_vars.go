package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/postfix"
)

func newVarsCmd() *cobra.Command {
	var (
		in    inputFlags
		vocab vocabFlags
	)

	cmd := &cobra.Command{
		Use:   "vars [expr...]",
		Short: "List the names each expression reads",
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
				names := s.Vars()
				for i, name := range names {
					if !v.IsVariable(name) {
						names[i] = name + "?"
					}
				}
				fmt.Fprintln(out, strings.Join(names, " "))
			}
			return nil
		},
	}

	in.register(cmd)
	vocab.register(cmd)

	return cmd
}
