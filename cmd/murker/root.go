package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zeusync/murker/internal/app"
	"github.com/zeusync/murker/internal/config"
	"github.com/zeusync/murker/internal/injector"
)

type rootFlags struct {
	config      string
	roster      string
	seed        string
	runs        int
	parallelism int
	maxTurns    int
	trace       bool
}

// NewRootCmd builds the murker command. Flags win over the environment, which
// wins over the config file.
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "murker [goblins]",
		Short:         "Watch a horde of berserk goblins fight to the last one standing",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags, args, os.LookupEnv)
			if err != nil {
				return err
			}

			a, cleanup, err := injector.InitializeApp(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if cfg.Runs > 1 {
				tally, err := a.RunBatch(cmd.Context())
				if err != nil {
					return err
				}
				printTally(cmd.OutOrStdout(), tally)
				return nil
			}
			_, err = a.Run(cmd.Context(), cmd.OutOrStdout())
			return err
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.config, "config", "c", "", "path to a YAML config file")
	f.StringVar(&flags.roster, "roster", "", "path to a YAML roster; defaults to the goblin horde")
	f.StringVar(&flags.seed, "seed", "", "seed phrase for reproducible battles")
	f.IntVar(&flags.runs, "runs", 1, "number of battles; more than one prints a tally instead of the story")
	f.IntVar(&flags.parallelism, "parallelism", 4, "battles played at once in a batch")
	f.IntVar(&flags.maxTurns, "max-turns", config.DefaultMaxTurns, "give up after this many turns (0 = never)")
	f.BoolVar(&flags.trace, "trace", false, "log every event delivered to a component")

	return cmd
}

func resolveConfig(cmd *cobra.Command, flags rootFlags, args []string, lookup func(string) (string, bool)) (config.Config, error) {
	cfg := config.Default()
	if flags.config != "" {
		var err error
		if cfg, err = config.LoadFile(flags.config); err != nil {
			return config.Config{}, err
		}
	}
	cfg.ApplyEnv(lookup)

	changed := cmd.Flags().Changed
	if changed("roster") {
		cfg.Roster = flags.roster
	}
	if changed("seed") {
		cfg.Seed = flags.seed
	}
	if changed("runs") {
		cfg.Runs = flags.runs
	}
	if changed("parallelism") {
		cfg.Parallelism = flags.parallelism
	}
	if changed("max-turns") {
		cfg.MaxTurns = flags.maxTurns
	}
	if changed("trace") {
		cfg.Trace = flags.trace
	}

	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return config.Config{}, fmt.Errorf("%w: goblin count %q is not a number", config.ErrInvalidConfig, args[0])
		}
		cfg.Goblins = n
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func printTally(w io.Writer, t app.Tally) {
	fmt.Fprintf(w, "Battles: %d\n", t.Runs)
	fmt.Fprintf(w, "Turns: %d\n", t.Turns)
	fmt.Fprintf(w, "No survivor: %d\n", t.NoSurvivor)
	fmt.Fprintf(w, "Undecided: %d\n", t.Undecided)
	fmt.Fprintln(w, "Victors:")

	names := make([]string, 0, len(t.Victors))
	for name := range t.Victors {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if t.Victors[names[i]] != t.Victors[names[j]] {
			return t.Victors[names[i]] > t.Victors[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(w, "* %s: %d\n", name, t.Victors[name])
	}
}
