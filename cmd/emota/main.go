package main

// #region imports
import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// #endregion imports

// #region root

var (
	flagConfig  string
	flagPretty  bool
	flagVerbose bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "emota",
		Short:         "Motivational-archetypal engine CLI",
		Long:          "emota converts an experience plus four scalar inputs into a structured snapshot of motivational and archetypal state.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML configuration")
	root.PersistentFlags().BoolVar(&flagPretty, "pretty", false, "pretty-print JSON output")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newProcessCmd())
	root.AddCommand(newReplayCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newNarrateCmd())
	return root
}

// newLogger builds the CLI logger. Verbose mode uses the development
// encoder; otherwise only warnings and above reach stderr.
func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion root
