// Command quasp searches for answer sets of a normal logic program with
// quantum amplitude amplification, running on the bundled statevector
// simulator.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quasp/quasp/program"
	"github.com/quasp/quasp/search"
	"github.com/quasp/quasp/simul"
)

const version = "0.2.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "quasp",
		Short:         "answer-set search by quantum amplitude amplification",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log search progress")
	root.AddCommand(solveCmd(), enumerateCmd(), versionCmd())
	return root
}

func solveCmd() *cobra.Command {
	var (
		configPath string
		seed       int64
		maxRounds  int
		known      int
	)
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "search for one stable model of the program in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			opts, err := loadOptions(configPath)
			if err != nil {
				return err
			}
			if seed != 0 {
				opts.Seed = seed
			}
			if opts.Seed == 0 {
				opts.Seed = time.Now().UnixNano()
			}
			if maxRounds != 0 {
				opts.MaxRounds = maxRounds
			}
			engine, err := search.New(p, simul.New(opts.Seed), opts)
			if err != nil {
				return err
			}
			var res *search.Result
			if known > 0 {
				res, err = engine.RunKnownCount(cmd.Context(), known)
			} else {
				res, err = engine.Run(cmd.Context())
			}
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML search options file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = from the clock)")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "cap on search rounds (0 = budget only)")
	cmd.Flags().IntVar(&known, "known-count", 0, "known number of stable models; uses the optimal fixed iteration count")
	return cmd
}

func enumerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enumerate FILE",
		Short: "classically enumerate all stable models of the program in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProgram(args[0])
			if err != nil {
				return err
			}
			models, err := p.AnswerSets()
			if err != nil {
				return err
			}
			if len(models) == 0 {
				fmt.Println("UNSATISFIABLE")
				return nil
			}
			for i, x := range models {
				fmt.Printf("Answer %d: {%s}\n", i+1, strings.Join(p.TrueAtoms(x), ", "))
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the quasp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("quasp", version)
		},
	}
}

func loadProgram(path string) (*program.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open program: %w", err)
	}
	defer f.Close()
	return program.Parse(f)
}

func printResult(res *search.Result) {
	switch res.Status {
	case search.StatusFound:
		fmt.Printf("Answer: {%s}\n", strings.Join(res.Model, ", "))
	case search.StatusUnsatisfiable:
		fmt.Println("UNSATISFIABLE")
	case search.StatusExhausted:
		fmt.Printf("UNKNOWN: no stable model within budget (%d/%d iterations, %d rounds)\n",
			res.Iterations, res.Budget, res.Rounds)
	}
	fmt.Printf("Run %s: %d rounds, %d ancillas, %v\n", res.RunID, res.Rounds, res.Ancillas, res.Elapsed)
}
