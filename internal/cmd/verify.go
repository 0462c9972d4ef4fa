package cmd

import (
	"fmt"

	"github.com/matthieukhl/telcodata/internal/report"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check an existing database against the dataset invariants",
	Long: `Checks phone number uniqueness, foreign keys, call and data usage costs
against the rate tables, and billing due/payment dates. Exits non-zero when
any violation is found.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().Int("show", 20, "Maximum number of violations to print")
}

func runVerify(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Verifying dataset...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	limit, _ := cmd.Flags().GetInt("show")

	violations, err := report.Verify(cmd.Context(), db)
	if err != nil {
		return fmt.Errorf("failed to verify dataset: %w", err)
	}

	if len(violations) == 0 {
		fmt.Println("✅ No violations found")
		return nil
	}

	for i, violation := range violations {
		if i == limit {
			fmt.Printf("   ... and %d more\n", len(violations)-limit)
			break
		}
		fmt.Printf("   ⚠️  %s\n", violation)
	}

	return fmt.Errorf("%d invariant violation%s found", len(violations), pluralize(len(violations)))
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
