// Package cli implements the aircast command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aircast-fm/aircast/internal/api"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "aircast",
	Short: "Engagement and reward core for live audio rooms",
	Long: `aircast tracks listener engagement in live audio rooms: points for
activity, badges, login streaks, leaderboards, and listening analytics.
It ingests activity and connection events over HTTP and pushes live
updates to subscribers over SSE.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default ~/.aircast/config.toml)")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the aircast version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "aircast %s\n", api.Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
