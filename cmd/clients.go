package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"creditwatch/internal/config"
	"creditwatch/internal/report"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List the client names present in the ledger",
	RunE:  runClients,
}

func init() {
	rootCmd.AddCommand(clientsCmd)
}

func runClients(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := buildStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	ds, err := store.Snapshot(cmd.Context(), true)
	if err != nil {
		return fmt.Errorf("failed to fetch ledger: %w", err)
	}

	for _, name := range report.ListClients(ds) {
		fmt.Println(name)
	}
	return nil
}
