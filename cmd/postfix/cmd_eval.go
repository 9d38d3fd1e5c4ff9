package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/postfix"
)

func newEvalCmd() *cobra.Command {
	var (
		in    inputFlags
		vocab vocabFlags
		defs  []string
		verb  string
		echo  bool
	)

	cmd := &cobra.Command{
		Use:   "eval [expr...]",
		Short: "Evaluate expressions",
		Long: `Evaluate each expression and print its value.

Expressions come from the arguments, or from --in or stdin when no
arguments are given. With -n, each input line is a separate expression.

Variables are bound with --given name=value, where value is itself an
expression that may use names given before it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := vocab.options()
			if err != nil {
				return err
			}
			b, err := bind(defs, opts)
			if err != nil {
				return err
			}
			srcs, err := in.sources(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			// Parse everything before evaluating anything.
			p := postfix.New(opts...)
			seqs := make([]postfix.Postfix, len(srcs))
			for i, src := range srcs {
				s, err := p.Parse(src.text)
				if err != nil {
					return fmt.Errorf("%s: %w", src.name, err)
				}
				log.Debugf("%s: %v", src.name, s)
				seqs[i] = s
			}

			out := cmd.OutOrStdout()
			var failed int
			for i, s := range seqs {
				if echo {
					fmt.Fprintf(out, "%v : ", s)
				}
				r, err := s.Eval(b)
				if err != nil {
					log.Infof("%s: %v", srcs[i].name, err)
					fmt.Fprintln(out, err)
					failed++
					continue
				}
				fmt.Fprintf(out, verb+"\n", r)
			}
			if failed != 0 {
				return fmt.Errorf("%d of %d expressions failed", failed, len(seqs))
			}
			return nil
		},
	}

	in.register(cmd)
	vocab.register(cmd)
	cmd.Flags().StringArrayVar(&defs, "given", nil, "name=value variable definition (any number of times)")
	cmd.Flags().StringVar(&verb, "fmt", "%g", "result formatting string")
	cmd.Flags().BoolVar(&echo, "echo", false, "print postfix forms")

	return cmd
}
