package main

// #region imports
import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primecodex/emota-engine/internal/config"
	"github.com/primecodex/emota-engine/internal/replay"
)

// #endregion imports

// #region replay-cmd

func newReplayCmd() *cobra.Command {
	var fixturePath string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a recorded experience fixture and check expectations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fixturePath == "" {
				return fmt.Errorf("--fixture is required")
			}

			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			fixture, err := replay.LoadFixture(fixturePath)
			if err != nil {
				return err
			}

			results, summary, err := replay.Replay(cfg, fixture)
			if err != nil {
				return err
			}

			if jsonOut {
				out := struct {
					Description string              `json:"description"`
					Results     []replay.StepResult `json:"results"`
					Summary     replay.Summary      `json:"summary"`
				}{fixture.Description, results, summary}
				if err := printJSON(cmd.OutOrStdout(), out); err != nil {
					return err
				}
			} else {
				printReplayTable(cmd, fixture, results, summary)
			}

			if !summary.Passed {
				return fmt.Errorf("replay failed: %d/%d policy and %d/%d pattern expectations met",
					summary.PolicyMatches, summary.PolicyChecks,
					summary.PatternMatches, summary.PatternChecks)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to fixture JSON")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output results as JSON")
	return cmd
}

func printReplayTable(cmd *cobra.Command, fixture *replay.Fixture, results []replay.StepResult, summary replay.Summary) {
	if fixture.Description != "" {
		cmd.Printf("%s\n\n", fixture.Description)
	}
	cmd.Printf("%-4s %-12s %-10s %-10s %s\n", "#", "policy", "pattern", "tension", "status")
	for _, r := range results {
		status := "ok"
		if !r.PolicyMatch {
			status = fmt.Sprintf("policy mismatch (want %s)", r.ExpectedPolicy)
		} else if !r.PatternMatch {
			status = fmt.Sprintf("pattern mismatch (want %s)", r.ExpectedPattern)
		}
		cmd.Printf("%-4d %-12s %-10s %-10.4f %s\n",
			r.Index, r.Policy, r.DominantPattern, r.Snapshot.Motivation.Tension, status)
	}
	cmd.Printf("\n%d steps, %d/%d policy checks, %d/%d pattern checks\n",
		summary.TotalSteps, summary.PolicyMatches, summary.PolicyChecks,
		summary.PatternMatches, summary.PatternChecks)
}

// #endregion replay-cmd
