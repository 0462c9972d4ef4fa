package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/matthieukhl/telcodata/internal/report"
	"github.com/matthieukhl/telcodata/internal/seed"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic telecom dataset",
	Long: `Creates the customers, call_records, data_usage and billing tables and
populates them with synthetic records in a single transaction. If any write
fails the whole batch is rolled back.

Defaults: 1000 customers, 1200 call records, 500 data usage records and
300 billing records. Use --seed for a reproducible dataset.`,
	RunE: generateData,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.Int("customers", 0, "Number of customers to generate")
	flags.Int("calls", 0, "Number of call records to generate")
	flags.Int("usage-records", 0, "Number of data usage records to generate")
	flags.Int("bills", 0, "Number of billing records to generate")
	flags.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	flags.Bool("drop-first", false, "Drop existing tables before creating")
	flags.Bool("schema-only", false, "Create schema only, skip data")
	flags.Bool("no-report", false, "Skip the sample query report")

	_ = v.BindPFlag("generate.customers", flags.Lookup("customers"))
	_ = v.BindPFlag("generate.calls", flags.Lookup("calls"))
	_ = v.BindPFlag("generate.usage_records", flags.Lookup("usage-records"))
	_ = v.BindPFlag("generate.bills", flags.Lookup("bills"))
	_ = v.BindPFlag("generate.seed", flags.Lookup("seed"))
	_ = v.BindPFlag("generate.drop_first", flags.Lookup("drop-first"))
}

func generateData(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 Creating telecom database with synthetic data...")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log.Level)

	db, err := connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	schemaOnly, _ := cmd.Flags().GetBool("schema-only")
	skipReport, _ := cmd.Flags().GetBool("no-report")

	if schemaOnly {
		if cfg.Generate.DropFirst {
			fmt.Println("🗑️  Dropping existing tables...")
			if err := db.DropSchema(ctx); err != nil {
				return fmt.Errorf("failed to drop schema: %w", err)
			}
		}
		fmt.Println("📋 Creating schema...")
		if err := db.SetupSchema(ctx); err != nil {
			return fmt.Errorf("failed to setup schema: %w", err)
		}
		fmt.Println("✅ Schema ready")
		return nil
	}

	seeder := seed.NewSeeder(db, log)
	seeder.Progress = func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	}

	result, err := seeder.Run(ctx, cfg.Generate)
	if err != nil {
		fmt.Println("❌ Generation failed, no data was committed")
		return err
	}

	fmt.Printf("✅ Generated %d records in %v (seed %d)\n", result.Inserted.Total(), result.Elapsed.Round(time.Millisecond), result.Seed)

	if !skipReport {
		summary, err := report.Build(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		summary.Render(os.Stdout)
	}

	fmt.Printf("\n💾 Database '%s' created successfully!\n", cfg.DB.DSN)
	return nil
}
