package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
	envFile    string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envCredentials := os.Getenv("ENV_FILE")
	if envCredentials == "" {
		envCredentials = ".env"
	}

	cmd := &cobra.Command{
		Use:   "trivia-service",
		Short: "Daily trivia question, score and leaderboard service",
	}

	cmd.PersistentFlags().StringVar(&port, "port", os.Getenv("PORT"), "port to listen on (overrides config)")
	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", envCredentials, "optional env file with credentials")
	cmd.AddCommand(NewStartCmd(&configPath, &envFile, &port))
	cmd.AddCommand(NewMigrateCmd(&configPath, &envFile))
	cmd.AddCommand(NewSeedCmd(&configPath, &envFile))
	return cmd
}
