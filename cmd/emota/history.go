package main

// #region imports
import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/primecodex/emota-engine/internal/memory"
)

// #endregion imports

// #region history-cmd

func newHistoryCmd() *cobra.Command {
	var dbPath string
	var last int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect persisted episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return fmt.Errorf("--db is required")
			}

			store, err := memory.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			episodes, err := store.List(last)
			if err != nil {
				return err
			}

			if jsonOut {
				return printJSON(cmd.OutOrStdout(), episodes)
			}

			total, err := store.Count()
			if err != nil {
				return err
			}
			cmd.Printf("%d episodes (%d shown)\n\n", total, len(episodes))
			for _, ep := range episodes {
				cmd.Printf("%s  %-12s %-8s  %s\n",
					ep.Timestamp.Format("2006-01-02 15:04:05"),
					ep.State.Policy, ep.Resonance.Dominant, truncate(ep.Content, 60))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "path to episodes SQLite database")
	cmd.Flags().IntVar(&last, "last", 20, "show N most recent episodes")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// #endregion history-cmd
