package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"creditwatch/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "creditwatch",
	Short: "Creditwatch - client credit reporting from a remote ledger spreadsheet",
	Long: `Creditwatch loads a client ledger from a remote spreadsheet and computes
per-client credit aggregates: credit days outstanding, collectible overdue
amounts, monthly turnover and per-material usage.

Run "creditwatch serve" to expose the reports over HTTP, or use the one-shot
report and clients commands from the terminal.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Creditwatch!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
