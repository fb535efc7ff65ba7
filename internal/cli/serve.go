package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aircast-fm/aircast/internal/daemon"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "Override the API listen host")
	serveCmd.Flags().Int("port", 0, "Override the API listen port")
	serveCmd.Flags().Bool("no-replay", false, "Skip activity log replay on startup")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engagement core",
	Long: `Run the engagement core: replay the persisted activity log, start the
weekly sweep, and serve the HTTP API until interrupted.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load(configPath)
	if err != nil {
		return err
	}

	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.API.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.API.Port = port
	}
	if noReplay, _ := cmd.Flags().GetBool("no-replay"); noReplay {
		cfg.Storage.ReplayOnStart = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return daemon.Run(ctx, cfg)
}
