package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/postfix"
)

// vocabFlags are the flags shared by commands that build a vocabulary.
type vocabFlags struct {
	vars    []string
	lenient bool
}

func (f *vocabFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.vars, "vars", postfix.DefaultVars(), "variable names")
	cmd.Flags().BoolVar(&f.lenient, "lenient", false, "evaluate unbound names and unknown function calls as zero")
}

// options builds the vocabulary options. postfix.Vars panics on names that
// aren't identifiers, so that becomes an error here.
func (f *vocabFlags) options() (opts []postfix.Option, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("--vars: %v", r)
		}
	}()
	opts = append(opts, postfix.Vars(f.vars...))
	if f.lenient {
		opts = append(opts, postfix.Lenient())
	}
	return opts, nil
}

// source is one expression to process along with where it came from.
type source struct {
	name string
	text string
}

// inputFlags are the flags shared by commands that read expressions.
type inputFlags struct {
	inname string
	lines  bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.inname, "in", "", "input file (default stdin if no args given)")
	cmd.Flags().BoolVarP(&f.lines, "lines", "n", false, "parse separate input lines as separate expressions")
}

// sources collects expressions from the input file and the arguments.
func (f *inputFlags) sources(stdin io.Reader, args []string) ([]source, error) {
	var srcs []source
	r, name, err := infile(f.inname, len(args) == 0, stdin)
	if err != nil {
		return nil, err
	}
	if r != nil {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		srcs = append(srcs, split(name, string(b), f.lines)...)
	}
	for i, arg := range args {
		srcs = append(srcs, split("arg "+strconv.Itoa(i+1), arg, f.lines)...)
	}
	return srcs, nil
}

// split divides text into one source per non-blank line, or returns it whole.
func split(name, text string, lines bool) []source {
	if !lines {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []source{{name: name, text: text}}
	}
	var srcs []source
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		srcs = append(srcs, source{name: name + ":" + strconv.Itoa(i+1), text: line})
	}
	return srcs
}

func infile(inname string, std bool, stdin io.Reader) (io.Reader, string, error) {
	switch {
	case inname != "" && inname != "-":
		b, err := os.ReadFile(inname)
		if err != nil {
			return nil, "", fmt.Errorf("read input: %w", err)
		}
		return strings.NewReader(string(b)), inname, nil
	case inname == "-", std:
		return stdin, "stdin", nil
	}
	return nil, "", nil
}

// given is one name=value definition. The value is itself an expression.
type given struct {
	name  string
	value string
}

func parseGiven(s string) (given, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return given{}, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	g := given{name: strings.TrimSpace(d[0]), value: strings.TrimSpace(d[1])}
	if g.name == "" {
		return given{}, fmt.Errorf("missing variable name in %q", s)
	}
	return g, nil
}

// bind evaluates definitions in order. Each value may use the names defined
// before it.
func bind(defs []string, opts []postfix.Option) (postfix.Bindings, error) {
	b := make(postfix.Bindings, len(defs))
	for _, def := range defs {
		g, err := parseGiven(def)
		if err != nil {
			return nil, err
		}
		r, err := postfix.Eval(g.value, b, opts...)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", g.name, err)
		}
		log.Debugf("given %s = %g", g.name, r)
		b[g.name] = r
	}
	return b, nil
}
