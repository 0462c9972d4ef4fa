package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matthieukhl/telcodata/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print record counts and sample queries for an existing database",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().Bool("json", false, "Print the report as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := report.Build(cmd.Context(), db)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	summary.Render(os.Stdout)
	return nil
}
