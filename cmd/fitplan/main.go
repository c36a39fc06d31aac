// Package main provides the fitplan binary: the HTTP API server and a
// command line preview of generated weekly plans.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"fitplan/internal/domain"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		env        string
		configPath string
	)

	cmd := &cobra.Command{
		Use:          "fitplan",
		Short:        "Weekly workout and meal planner",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&env, "env", "development", "Config section to use (development, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "Config file path (TOML)")

	cmd.AddCommand(serveCmd(&env, &configPath), previewCmd())
	return cmd
}

func previewCmd() *cobra.Command {
	var goal string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the generated week for a goal as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, fellBack := domain.NormalizeGoal(domain.Goal(goal))
			if fellBack {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown goal %q, using %s\n", goal, g)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(domain.GenerateWeek(domain.Profile{Goal: g}))
		},
	}
	cmd.Flags().StringVarP(&goal, "goal", "g", string(domain.GoalMaintenance), "Fitness goal (weight_loss, muscle_gain, maintenance)")
	return cmd
}
