package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/formula"
)

// Exit codes.
const (
	exitOK      = 0
	exitFormula = 1
	exitUsage   = 2
)

type options struct {
	verb    string
	seed    uint64
	echo    bool
	verbose bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	code := exitOK
	root := &cobra.Command{
		Use:           "formula",
		Short:         "Evaluate arithmetic formulas with $placeholders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.verb, "fmt", "%g", "result formatting string")
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "seed for random() (default nondeterministic)")
	root.PersistentFlags().BoolVar(&opts.echo, "echo", false, "print parse trees")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information")

	root.AddCommand(&cobra.Command{
		Use:   "eval FORMULA [ARGS...]",
		Short: "Evaluate one formula",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger(stderr, opts.verbose)
			e := evaluator(cmd.Flags().Changed("seed"), opts.seed)
			vals, err := parseArgs(args[1:])
			if err != nil {
				return err
			}
			if opts.echo {
				tree, err := e.Tree(args[0], vals...)
				if err == nil {
					fmt.Fprintf(stdout, "%s : ", tree)
				}
			}
			r, err := e.Calc(args[0], vals...)
			if err != nil {
				log.Debug("evaluation failed", slog.String("formula", args[0]), slog.Any("err", err))
				fmt.Fprintln(stderr, err)
				code = exitFormula
				return nil
			}
			fmt.Fprintf(stdout, opts.verb+"\n", r)
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "run FILE",
		Short: "Evaluate a YAML batch of formulas and check expectations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger(stderr, opts.verbose)
			b, err := loadBatch(args[0])
			if err != nil {
				return err
			}
			seeded := cmd.Flags().Changed("seed")
			if b.Seed != nil && !seeded {
				seeded, opts.seed = true, *b.Seed
			}
			log.Debug("loaded batch", slog.String("file", args[0]), slog.Int("cases", len(b.Cases)))
			failed := b.run(evaluator(seeded, opts.seed), stdout, opts, log)
			if failed > 0 {
				fmt.Fprintf(stderr, "%d of %d cases failed\n", failed, len(b.Cases))
				code = exitFormula
			}
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "examples",
		Short: "Show example formulas and their results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger(stderr, opts.verbose)
			failed, err := showExamples(evaluator(cmd.Flags().Changed("seed"), opts.seed), stdout, opts, log)
			if err != nil {
				return err
			}
			if failed > 0 {
				fmt.Fprintf(stderr, "%d examples failed\n", failed)
				code = exitFormula
			}
			return nil
		},
	})

	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "formula:", err)
		return exitUsage
	}
	return code
}

// evaluator creates an Evaluator with a deterministic random source if seeded.
func evaluator(seeded bool, seed uint64) *formula.Evaluator {
	if seeded {
		return formula.New(formula.WithSeed(seed))
	}
	return formula.New()
}

func logger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseArgs(args []string) ([]float64, error) {
	vals := make([]float64, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			var nerr *strconv.NumError
			if errors.As(err, &nerr) {
				err = nerr.Err
			}
			return nil, fmt.Errorf("argument %d (%q): %w", i+1, s, err)
		}
		vals[i] = v
	}
	return vals, nil
}
