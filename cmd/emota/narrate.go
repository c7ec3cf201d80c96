package main

// #region imports
import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/primecodex/emota-engine/internal/connect"
)

// #endregion imports

// #region narrate-cmd

func newNarrateCmd() *cobra.Command {
	var in inputFlags
	var model string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "narrate [experience]",
		Short: "Process one experience and narrate the snapshot via OpenAI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := resolveExperience(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			snap, _, err := runExperience(content, in.inputs())
			if err != nil {
				return err
			}

			narrator, err := connect.NewOpenAINarrator("", connect.WithModel(model))
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			text, err := narrator.Narrate(ctx, snap)
			if err != nil {
				return err
			}

			if err := printJSON(cmd.OutOrStdout(), snap); err != nil {
				return err
			}
			cmd.Printf("\n%s\n", text)
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&model, "model", "", "completion model (default gpt-4o)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}

// #endregion narrate-cmd
