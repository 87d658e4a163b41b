// Package cmd implements the CLI commands for ssello-gateway.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "ssello-gateway",
	Short: "Amazon catalog lookup gateway for the Ssello dashboard",
	Long: "An HTTP gateway between the Ssello seller dashboard and the Amazon Selling Partner API.\n" +
		"It resolves credentials, exchanges LWA refresh tokens, searches the catalog by keyword,\n" +
		"ASIN or UPC, and looks up buy-box pricing.",
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env is normal outside local development.
		_ = godotenv.Load(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (optional)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(checkConfigCommand())
	rootCmd.AddCommand(openAPICommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
