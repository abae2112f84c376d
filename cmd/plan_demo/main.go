// README: Command-line front end; runs the planner or prints a forecast without the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"voyage/internal/app"
	"voyage/internal/config"
	"voyage/internal/logger"
)

var (
	// verbose switches the logger to debug.
	verbose bool

	cfg       config.Config
	providers *app.Providers
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "plan_demo",
	Short: "Plan a trip from the terminal",
	Long: `plan_demo runs the trip planning pipeline against the configured
providers and prints the trace, the itinerary or the suggested alternates.
Credentials are read from the environment or a .env file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if providers != nil {
			providers.Close()
		}
		_ = logger.Log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(weatherCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}
	if err := logger.Init(level); err != nil {
		return err
	}
	providers, err = app.NewProviders(cmd.Context(), cfg, nil)
	return err
}
