package main

// #region imports
import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primecodex/emota-engine/internal/braid"
	"github.com/primecodex/emota-engine/internal/config"
	"github.com/primecodex/emota-engine/internal/memory"
	"github.com/primecodex/emota-engine/internal/unity"
)

// #endregion imports

// #region process-cmd

type inputFlags struct {
	goal        float64
	threat      float64
	novelty     float64
	uncertainty float64
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.goal, "goal", 0.5, "goal value (0-1)")
	cmd.Flags().Float64Var(&f.threat, "threat", 0.0, "threat level (0-1)")
	cmd.Flags().Float64Var(&f.novelty, "novelty", 0.0, "novelty (0-1)")
	cmd.Flags().Float64Var(&f.uncertainty, "uncertainty", 0.0, "uncertainty (0-1)")
}

func (f *inputFlags) inputs() braid.Inputs {
	return braid.Inputs{
		GoalValue:   f.goal,
		ThreatLevel: f.threat,
		Novelty:     f.novelty,
		Uncertainty: f.uncertainty,
	}
}

func newProcessCmd() *cobra.Command {
	var in inputFlags
	var dbPath string

	cmd := &cobra.Command{
		Use:   "process [experience]",
		Short: "Process one experience and print the snapshot JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := resolveExperience(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			snap, orch, err := runExperience(content, in.inputs())
			if err != nil {
				return err
			}

			if dbPath != "" {
				if err := persistEpisodes(dbPath, orch.Episodes()); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), snap)
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&dbPath, "db", "", "persist the episode to this SQLite database")
	return cmd
}

// #endregion process-cmd

// #region helpers

// resolveExperience returns the positional argument or, failing that,
// reads the experience text from stdin.
func resolveExperience(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	data, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("experience text must be provided as an argument or via stdin")
	}
	return content, nil
}

// runExperience builds a fresh orchestrator from the resolved config and
// processes a single experience.
func runExperience(content string, in braid.Inputs) (unity.Snapshot, *unity.Orchestrator, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return unity.Snapshot{}, nil, err
	}
	logger, err := newLogger()
	if err != nil {
		return unity.Snapshot{}, nil, fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	orch, err := unity.New(cfg, unity.WithLogger(logger))
	if err != nil {
		return unity.Snapshot{}, nil, err
	}
	snap := orch.ProcessExperience(content, in)
	return snap, orch, nil
}

func persistEpisodes(dbPath string, episodes []memory.Episode) error {
	store, err := memory.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.AppendAll(episodes)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if flagPretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// #endregion helpers
