package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"creditwatch/internal/config"
	"creditwatch/internal/logger"
	"creditwatch/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <client>",
	Short: "Print one client's credit report as JSON",
	Long: `Fetch the ledger from the configured spreadsheet source and print the
full credit report for a single client to stdout.`,
	Example: `  creditwatch report "ACME TRADING LTD"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("report")
	client := args[0]

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

	log.Info().Int("rows", ds.Len()).Str("client", client).Msg("Computing report")

	rep, err := report.Compute(ds, client, reportOptions(cfg))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
